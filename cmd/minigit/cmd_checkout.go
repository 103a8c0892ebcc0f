package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunv/minigit/cmd/ui"
	"github.com/arjunv/minigit/internal/checkout"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/store"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <target>",
		Short: "Switch to a branch or a detached commit",
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
			fromCommit, err := refStore.ResolveHeadCommit()
			if err != nil {
				return err
			}

			s := store.New(r.ObjectsDir())
			engine := checkout.New(s, refStore, r.WorkDir)

			target, err := engine.Checkout(args[0], fromCommit)
			if err != nil {
				return err
			}

			if target.IsBranch {
				fmt.Println(ui.SuccessMessage("switched to branch", target.Branch))
			} else {
				fmt.Println(ui.SuccessMessage("HEAD is now detached at", target.Commit.Short()))
			}
			return nil
		},
	}
}
