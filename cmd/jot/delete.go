package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id...]",
	Short: "Delete notes",
	Long:  `Delete one or more notes by id. Unknown ids are ignored.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, cleanup := openStore(ctx)
		defer cleanup()

		before := store.Len()
		store.DeleteMany(args)
		fmt.Printf("Deleted %d note(s).\n", before-store.Len())
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
