package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arjunv/minigit/cmd/ui"
	"github.com/arjunv/minigit/internal/common/errs"
	"github.com/arjunv/minigit/internal/config"
	"github.com/arjunv/minigit/internal/index"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/repo"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new minigit repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}
			if err := os.MkdirAll(absPath, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", absPath, err)
			}

			r, err := repo.Init(absPath)
			if err != nil {
				var e *errs.Error
				if errors.As(err, &e) && e.Code == errs.CodeAlreadyInit {
					fmt.Println(ui.Yellow("Reinitialized existing minigit repository in " + filepath.Join(absPath, repo.DirName)))
					return nil
				}
				return err
			}

			cfg := config.Config{
				UserName:      config.DefaultUserName,
				UserEmail:     config.DefaultUserEmail,
				DefaultBranch: config.DefaultBranch,
			}
			if err := config.Save(r.ConfigPath(), cfg); err != nil {
				return err
			}

			if err := refs.New(r.Root).InitHead(cfg.DefaultBranch); err != nil {
				return err
			}

			// Created eagerly as a zero-byte file.
			if err := index.New().Save(r.IndexPath()); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMessage("Initialized empty minigit repository in", r.Root))
			return nil
		},
	}
}
