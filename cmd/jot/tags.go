package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag vocabulary",
	Long:  `List every distinct hashtag across all notes, plus the "All" filter.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, cleanup := openStore(ctx)
		defer cleanup()

		for _, tag := range store.AllTags() {
			fmt.Println(tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
