package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jotkit/jot"
	"github.com/spf13/cobra"
)

var (
	addTitle string
	addColor string
	addPin   bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Capture a note",
	Long: `Capture a new note. Content is taken from the arguments, or from
stdin when no arguments are given. Hashtags in the content become the
note's tags.`,
	Run: func(cmd *cobra.Command, args []string) {
		content := strings.Join(args, " ")
		if content == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err == nil {
				content = string(data)
			}
		}

		ctx := context.Background()
		store, _, cleanup := openStore(ctx)
		defer cleanup()

		color := addColor
		if color == "" {
			if cfg := loadConfig(resolveDataDir()); cfg.DefaultColor != "" {
				color = cfg.DefaultColor
			}
		}

		note, ok := store.Add(jot.NoteInput{
			Title:    addTitle,
			Content:  content,
			Color:    color,
			IsPinned: addPin,
		})
		if !ok {
			fmt.Println("Nothing to save: note is empty.")
			os.Exit(1)
		}

		fmt.Printf("Saved note %s (%s)\n", note.ID, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title (defaults to \"New Note\")")
	addCmd.Flags().StringVar(&addColor, "color", "", "Background color, e.g. #ffd166")
	addCmd.Flags().BoolVar(&addPin, "pin", false, "Pin the note")
}
