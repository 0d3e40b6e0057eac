package main

import (
	"context"
	"fmt"

	"github.com/jotkit/jot"
	"github.com/spf13/cobra"
)

var clearReset bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every note",
	Long: `Delete every note and remove the stored snapshot. With --reset the
onboarding flag is cleared too, returning the app to first-run state.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, storage, cleanup := openStore(ctx)
		defer cleanup()

		if err := store.ClearAll(ctx); err != nil {
			fatal("Failed to clear notes", err)
		}
		fmt.Println("All notes deleted.")

		if clearReset {
			if err := jot.ResetOnboarding(ctx, storage); err != nil {
				fatal("Failed to reset onboarding", err)
			}
			fmt.Println("Onboarding reset.")
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVar(&clearReset, "reset", false, "Also clear the onboarding flag")
}
