package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunv/minigit/cmd/ui"
	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/index"
	"github.com/arjunv/minigit/internal/merge"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/store"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Three-way merge a branch into the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			l, err := acquireLock(r)
			if err != nil {
				return err
			}
			defer l.Release()

			refStore := refs.New(r.Root)
			head, err := refStore.HeadRead()
			if err != nil {
				return err
			}
			if !head.Attached {
				return errs.New("cmd", errs.CodeDetachedCommit, "merge", "cannot merge while HEAD is detached", nil)
			}

			identity, err := loadIdentity(r)
			if err != nil {
				return err
			}

			s := store.New(r.ObjectsDir())
			engine := merge.New(s, refStore, r.WorkDir)

			result, err := engine.Merge(head.Branch, args[0], identity)
			if err != nil {
				var e *errs.Error
				if errors.As(err, &e) && e.Code == errs.CodeMergeConflict {
					fmt.Println(ui.Red("Merge conflict in:"))
					for _, path := range result.Conflicts {
						fmt.Println(ui.FormatFileStatus(ui.StatusConflicted, path))
					}
					fmt.Println(ui.Yellow("Fix conflicts and run 'minigit add' + 'minigit commit' to complete the merge."))
					return err
				}
				return err
			}

			if result.UpToDate {
				fmt.Println(ui.Yellow("Already up to date."))
				return nil
			}

			idx, err := index.Load(r.IndexPath())
			if err != nil {
				return err
			}
			if err := merge.ClearIndexOnSuccess(idx, r.IndexPath()); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMessage("merge commit created", result.Fingerprint.Short()))
			return nil
		},
	}
}
