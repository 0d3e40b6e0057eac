package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jotkit/jot"
	"github.com/spf13/cobra"
)

var timelineDate string

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the notes created on a day",
	Long: `Show notes created on a calendar day, newest first, with the time
of day each was captured. Defaults to today.`,
	Run: func(cmd *cobra.Command, args []string) {
		day := time.Now()
		if timelineDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", timelineDate, time.Local)
			if err != nil {
				fmt.Printf("Error: invalid --date %q, expected YYYY-MM-DD\n", timelineDate)
				os.Exit(1)
			}
			day = parsed
		}

		ctx := context.Background()
		store, _, cleanup := openStore(ctx)
		defer cleanup()

		entries := jot.TimelineFor(store.Notes(), day)
		if len(entries) == 0 {
			fmt.Printf("No notes on %s.\n", day.Format("2 Jan 2006"))
			return
		}
		for _, e := range entries {
			fmt.Printf("%s  %s\n", e.Time, e.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().StringVar(&timelineDate, "date", "", "Day to show (YYYY-MM-DD, default today)")
}
