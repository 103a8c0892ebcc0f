package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arjunv/minigit/cmd/ui"
	"github.com/arjunv/minigit/internal/index"
	"github.com/arjunv/minigit/internal/objects"
	"github.com/arjunv/minigit/internal/refs"
	"github.com/arjunv/minigit/internal/repo"
	"github.com/arjunv/minigit/internal/store"
)

// newStatusCmd reports staged, modified, deleted, and untracked paths
// relative to the index and HEAD commit. Read-only: it mutates no
// repository state.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show staged, modified, and untracked paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			refStore := refs.New(r.Root)
			head, err := refStore.HeadRead()
			if err != nil {
				return err
			}

			branchLabel := head.Branch
			if !head.Attached {
				branchLabel = head.Commit.Short()
			}
			fmt.Println(ui.Header(" Repository Status "))
			fmt.Println(ui.BranchInfo(branchLabel, !head.Attached))
			fmt.Println()

			s := store.New(r.ObjectsDir())
			headTree, err := headTreeOf(s, refStore, head)
			if err != nil {
				return err
			}

			idx, err := index.Load(r.IndexPath())
			if err != nil {
				return err
			}

			tracked := make(map[string]bool)
			for p := range headTree {
				tracked[p] = true
			}
			for _, p := range idx.Paths() {
				tracked[p] = true
			}

			var staged, modified, deleted, untracked []string

			for path := range tracked {
				indexFp, inIndex := idx.Get(path)
				headFp, inHead := headTree[path]

				if inIndex && (!inHead || indexFp != headFp) {
					staged = append(staged, path)
				}

				data, readErr := os.ReadFile(filepath.Join(r.WorkDir, path))
				switch {
				case readErr != nil:
					deleted = append(deleted, path)
				default:
					want := indexFp
					if !inIndex {
						want = headFp
					}
					if objects.NewFingerprint(data) != want {
						modified = append(modified, path)
					}
				}
			}

			untracked, err = findUntracked(r, tracked)
			if err != nil {
				return err
			}

			printSection("Staged for commit:", staged, ui.StatusStaged)
			printSection("Modified, not staged:", modified, ui.StatusModified)
			printSection("Deleted, not staged:", deleted, ui.StatusDeleted)
			printSection("Untracked files:", untracked, ui.StatusUntracked)

			if len(staged)+len(modified)+len(deleted)+len(untracked) == 0 {
				fmt.Println(ui.Green(fmt.Sprintf("  %s  working tree clean", ui.IconCheck)))
			}

			return nil
		},
	}
}

func headTreeOf(s *store.Store, refStore *refs.Store, head refs.HeadState) (map[string]objects.Fingerprint, error) {
	var fp objects.Fingerprint
	if head.Unborn {
		return map[string]objects.Fingerprint{}, nil
	}
	if head.Attached {
		var err error
		fp, err = refStore.BranchRead(head.Branch)
		if err != nil {
			return nil, err
		}
	} else {
		fp = head.Commit
	}
	if fp == "" {
		return map[string]objects.Fingerprint{}, nil
	}
	c, err := s.GetCommit(fp)
	if err != nil {
		return nil, err
	}
	return c.Tree, nil
}

func findUntracked(r *repo.Repository, tracked map[string]bool) ([]string, error) {
	var result []string
	err := filepath.WalkDir(r.WorkDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(r.WorkDir, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if rel == repo.DirName || strings.HasPrefix(rel, repo.DirName+string(filepath.Separator)) {
				return filepath.SkipDir
			}
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !tracked[rel] {
			result = append(result, rel)
		}
		return nil
	})
	sort.Strings(result)
	return result, err
}

func printSection(title string, paths []string, status ui.FileStatus) {
	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	fmt.Println(ui.Section(title))
	for _, p := range paths {
		fmt.Println(ui.FormatFileStatus(status, p))
	}
	fmt.Println()
}
