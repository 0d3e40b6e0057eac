package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jotkit/jot"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Stream note change events",
	Long: `Subscribe to the store's change feed and print events as they
happen, including reloads triggered by external edits to the data
directory. The pattern matches note ids or tags (glob syntax);
omitted means everything.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store, _, cleanup := openStore(ctx, jot.WithWatch(true))
		defer cleanup()

		events := store.Subscribe(ctx, pattern)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		fmt.Println("Watching for changes. Ctrl-C to stop.")
		for {
			select {
			case <-sig:
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				fmt.Println(e.String())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
