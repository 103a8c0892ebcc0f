package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/arjunv/minigit/internal/objects"
)

// FileStatus is the presentation category of a path in `status` output.
type FileStatus int

const (
	StatusStaged FileStatus = iota
	StatusModified
	StatusDeleted
	StatusUntracked
	StatusConflicted
)

// FormatFileStatus renders path with the icon and color matching status.
func FormatFileStatus(status FileStatus, path string) string {
	switch status {
	case StatusStaged:
		return fmt.Sprintf("  %s  %s", addedStyle.Render(IconAdded), addedStyle.Render(path))
	case StatusModified:
		return fmt.Sprintf("  %s  %s", modifiedStyle.Render(IconModified), modifiedStyle.Render(path))
	case StatusDeleted:
		return fmt.Sprintf("  %s  %s", deletedStyle.Render(IconDeleted), deletedStyle.Render(path))
	case StatusConflicted:
		return fmt.Sprintf("  %s  %s", conflictStyle.Render(IconConflict), conflictStyle.Render(path))
	default:
		return fmt.Sprintf("  %s  %s", untrackedStyle.Render(IconUntracked), untrackedStyle.Render(path))
	}
}

// SuccessMessage renders a checkmarked success line with optional
// trailing detail segments.
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheck), Green(message)}
	for _, d := range details {
		parts = append(parts, Blue(d))
	}
	return strings.Join(parts, " ")
}

// BranchInfo renders the current branch line used by `status`.
func BranchInfo(branch string, detached bool) string {
	if detached {
		return fmt.Sprintf("%s %s", Cyan(IconBranch), Yellow("HEAD detached at "+branch))
	}
	return fmt.Sprintf("%s %s", Cyan(IconBranch), Blue("On branch "+branch))
}

// CommitLine is one row of commit history for table rendering.
type CommitLine struct {
	Fingerprint objects.Fingerprint
	Timestamp   string
	Message     string
}

// RenderCommitBox formats one commit as a bordered detail box, used by
// `log`'s default (non-table) view.
func RenderCommitBox(c CommitLine) string {
	var body strings.Builder
	fmt.Fprintf(&body, "%s %s\n", Yellow(IconCommit), Yellow(c.Fingerprint.String()))
	fmt.Fprintf(&body, "%s\n", Gray(c.Timestamp))
	fmt.Fprintf(&body, "\n%s", c.Message)
	return CommitBox(body.String())
}

// RenderCommitTable prints history as a compact table, used by `log
// --table`.
func RenderCommitTable(lines []CommitLine) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Commit", "Date", "Message")

	for _, c := range lines {
		message := c.Message
		if len(message) > 60 {
			message = message[:57] + "..."
		}
		table.Append(c.Fingerprint.Short(), c.Timestamp, message)
	}

	table.Render()
}

// RenderBranchTable prints branches as a table, used by `branch`.
func RenderBranchTable(current string, branches []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("", "Branch")

	for _, b := range branches {
		marker := ""
		if b == current {
			marker = "*"
		}
		table.Append(marker, b)
	}

	table.Render()
}
