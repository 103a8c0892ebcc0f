package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arjunv/minigit/cmd/ui"
	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/index"
	"github.com/arjunv/minigit/internal/store"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>",
		Short: "Stage a file for the next commit",
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

			path, err := relPath(r, args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return errs.New("cmd", errs.CodePathNotFound, "add", "no such file: "+args[0], nil)
				}
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			s := store.New(r.ObjectsDir())
			fp, err := s.PutBlob(data)
			if err != nil {
				return err
			}

			idx, err := index.Load(r.IndexPath())
			if err != nil {
				return err
			}
			idx.Set(path, fp)
			if err := idx.Save(r.IndexPath()); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMessage("staged", path))
			return nil
		},
	}
}
