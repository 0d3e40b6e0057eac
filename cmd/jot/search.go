package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jotkit/jot"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes by text",
	Long:  `Search note titles and content for a case-insensitive substring.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		ctx := context.Background()
		store, _, cleanup := openStore(ctx)
		defer cleanup()

		notes := jot.SortForGrid(jot.Filter(store.Notes(), jot.TagAll, query))
		if len(notes) == 0 {
			fmt.Printf("No notes match %q.\n", query)
			return
		}
		for _, n := range notes {
			fmt.Println(summarize(n))
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
