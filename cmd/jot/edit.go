package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jotkit/jot"
	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
	editColor   string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long: `Update fields of an existing note. Only the flags you pass change;
tags are re-derived from the content after the edit.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		ctx := context.Background()
		store, _, cleanup := openStore(ctx)
		defer cleanup()

		if _, ok := store.Get(id); !ok {
			fmt.Printf("No note with id %s\n", id)
			os.Exit(1)
		}

		var patch jot.NotePatch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}
		if cmd.Flags().Changed("color") {
			patch.Color = &editColor
		}

		store.Update(id, patch)
		n, _ := store.Get(id)
		fmt.Printf("Updated %s (%s)\n", n.ID, n.Title)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content")
	editCmd.Flags().StringVar(&editColor, "color", "", "New background color")
}
