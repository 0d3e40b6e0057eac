package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin [id...]",
	Short: "Toggle the pinned state of notes",
	Long:  `Toggle pinning for one or more notes. Pinned notes sort first in the grid.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, cleanup := openStore(ctx)
		defer cleanup()

		missing := 0
		for _, id := range args {
			if _, ok := store.Get(id); !ok {
				fmt.Printf("No note with id %s\n", id)
				missing++
				continue
			}
			store.TogglePin(id)
			n, _ := store.Get(id)
			if n.IsPinned {
				fmt.Printf("Pinned %s (%s)\n", n.ID, n.Title)
			} else {
				fmt.Printf("Unpinned %s (%s)\n", n.ID, n.Title)
			}
		}
		if missing > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
}
