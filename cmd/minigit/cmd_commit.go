package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunv/minigit/internal/index"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/snapshot"
	"github.com/arjunv/minigit/internal/store"
)

func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Snapshot the staged files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit message required (use -m)")
			}

			r, err := findRepository()
			if err != nil {
				return err
			}

			l, err := acquireLock(r)
			if err != nil {
				return err
			}
			defer l.Release()

			identity, err := loadIdentity(r)
			if err != nil {
				return err
			}

			idx, err := index.Load(r.IndexPath())
			if err != nil {
				return err
			}

			s := store.New(r.ObjectsDir())
			refStore := refs.New(r.Root)
			engine := snapshot.New(s, refStore)

			result, err := engine.Commit(idx, message, identity)
			if err != nil {
				return err
			}

			if err := idx.Save(r.IndexPath()); err != nil {
				return err
			}

			fmt.Printf("[%s] %s\n", result.Fingerprint.Short(), message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	return cmd
}
