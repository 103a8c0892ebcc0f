package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunv/minigit/cmd/ui"
	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/refs"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches, or create one at HEAD",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			refStore := refs.New(r.Root)

			if len(args) == 0 {
				branches, err := refStore.ListBranches()
				if err != nil {
					return err
				}
				head, err := refStore.HeadRead()
				if err != nil {
					return err
				}
				current := ""
				if head.Attached {
					current = head.Branch
				}
				ui.RenderBranchTable(current, branches)
				return nil
			}

			l, err := acquireLock(r)
			if err != nil {
				return err
			}
			defer l.Release()

			name := args[0]
			headFp, err := refStore.ResolveHeadCommit()
			if err != nil {
				return err
			}
			if headFp == "" {
				return errs.New("cmd", errs.CodeNoCommits, "branch", "no commits yet", nil)
			}

			exists, err := refStore.BranchExists(name)
			if err != nil {
				return err
			}
			if exists {
				return errs.New("cmd", errs.CodeBranchExists, "branch", "branch "+name+" already exists", nil)
			}

			if err := refStore.BranchWrite(name, headFp); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMessage("created branch", name))
			return nil
		},
	}
}
