package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jotkit/jot"
	"github.com/spf13/cobra"
)

var (
	listTag     string
	listSearch  string
	listJSON    bool
	listColumns bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List notes pinned-first, newest-first. Filter by tag and by a
case-insensitive text query. With --columns the grid's two-column
layout is printed side by side.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, cleanup := openStore(ctx)
		defer cleanup()

		notes := jot.SortForGrid(jot.Filter(store.Notes(), listTag, listSearch))

		if listJSON {
			out, err := json.MarshalIndent(notes, "", "  ")
			if err != nil {
				fatal("Failed to encode notes", err)
			}
			fmt.Println(string(out))
			return
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return
		}

		if listColumns {
			left, right := jot.SplitColumns(notes)
			max := len(left)
			if len(right) > max {
				max = len(right)
			}
			for i := 0; i < max; i++ {
				var l, r string
				if i < len(left) {
					l = summarize(left[i])
				}
				if i < len(right) {
					r = summarize(right[i])
				}
				fmt.Printf("%-40s %s\n", l, r)
			}
			return
		}

		for _, n := range notes {
			fmt.Println(summarize(n))
		}
	},
}

func summarize(n jot.Note) string {
	pin := " "
	if n.IsPinned {
		pin = "*"
	}
	title := n.Title
	if len(title) > 24 {
		title = title[:24]
	}
	line := fmt.Sprintf("%s %s  %-24s %s", pin, n.ID, title, n.Date)
	if len(n.Tags) > 0 {
		line += "  " + strings.Join(n.Tags, " ")
	}
	return line
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listTag, "tag", jot.TagAll, "Filter by tag (e.g. #errand)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter by text in title or content")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listColumns, "columns", false, "Print the two-column grid layout")
}
