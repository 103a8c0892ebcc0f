package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunv/minigit/cmd/ui"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/store"
)

func newLogCmd() *cobra.Command {
	var limit int
	var useTable bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history from HEAD",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			s := store.New(r.ObjectsDir())
			head, err := refs.New(r.Root).ResolveHeadCommit()
			if err != nil {
				return err
			}
			if head == "" {
				fmt.Println(ui.Yellow("No commits yet"))
				return nil
			}

			var lines []ui.CommitLine
			cur := head
			for cur != "" && (limit <= 0 || len(lines) < limit) {
				c, err := s.GetCommit(cur)
				if err != nil {
					break
				}
				lines = append(lines, ui.CommitLine{
					Fingerprint: cur,
					Timestamp:   c.Timestamp,
					Message:     c.Message,
				})
				if len(c.Parents) == 0 {
					break
				}
				cur = c.Parents[0]
			}

			if useTable {
				ui.RenderCommitTable(lines)
				return nil
			}

			for _, line := range lines {
				fmt.Println(ui.RenderCommitBox(line))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "limit the number of commits shown (0 = unlimited)")
	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "display history as a table")
	return cmd
}
