package objects

import (
	"fmt"
	"sort"
	"strings"
)

// Identity is the author/committer identity recorded on a Commit. The
// core only requires a placeholder identity; it is supplied by the
// config package at the command layer.
type Identity struct {
	Name  string
	Email string
}

// String renders the identity as "Name <email>".
func (p Identity) String() string {
	return fmt.Sprintf("%s <%s>", p.Name, p.Email)
}

// TimeLayout is the fixed local-time layout every commit timestamp uses.
const TimeLayout = "2006-01-02 15:04:05"

// Commit is an immutable snapshot record: a flat path→blob-fingerprint
// tree map, zero or more parents, a message, a timestamp, and an
// identity.
//
// Commits are never mutated after construction; re-serializing one with
// the same fields always reproduces the same bytes and therefore the
// same Fingerprint.
type Commit struct {
	Tree      map[string]Fingerprint
	Parents   []Fingerprint
	Author    Identity
	Committer Identity
	Timestamp string
	Message   string
}

// Fingerprint returns the content address of the commit's serialized
// form. Because the timestamp is part of that serialization, two
// commits built at different wall-clock seconds get different
// fingerprints even with identical trees and messages; this does not
// affect blob addressing.
func (c *Commit) Fingerprint() Fingerprint {
	return NewFingerprint(c.Serialize())
}

// Serialize renders the commit in the following text format:
//
//	tree
//	blob <fingerprint> <path>
//	...
//	parent <fingerprint>
//	author <name> <email> <timestamp>
//	committer <name> <email> <timestamp>
//	<blank line>
//	<message>
func (c *Commit) Serialize() []byte {
	var buf strings.Builder

	buf.WriteString("tree\n")
	for _, path := range c.sortedPaths() {
		fmt.Fprintf(&buf, "blob %s %s\n", c.Tree[path], path)
	}
	for _, parent := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", parent)
	}
	fmt.Fprintf(&buf, "author %s %s %s\n", c.Author.Name, c.Author.Email, c.Timestamp)
	fmt.Fprintf(&buf, "committer %s %s %s\n", c.Committer.Name, c.Committer.Email, c.Timestamp)
	buf.WriteString("\n")
	buf.WriteString(c.Message)

	return []byte(buf.String())
}

func (c *Commit) sortedPaths() []string {
	paths := make([]string, 0, len(c.Tree))
	for path := range c.Tree {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// IsMerge reports whether this commit has more than one parent.
func (c *Commit) IsMerge() bool { return len(c.Parents) > 1 }

// IsRoot reports whether this commit has no parents.
func (c *Commit) IsRoot() bool { return len(c.Parents) == 0 }

// ParseCommit parses the text format produced by Serialize. It tolerates
// a message body containing blank lines: only the *first* blank line
// ends the header section.
func ParseCommit(data []byte) (*Commit, error) {
	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || lines[0] != "tree" {
		return nil, fmt.Errorf("malformed commit: missing tree header")
	}

	c := &Commit{Tree: make(map[string]Fingerprint)}
	messageStart := -1

	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			messageStart = i + 1
			break
		}

		switch {
		case strings.HasPrefix(line, "blob "):
			fp, path, err := parseBlobLine(line)
			if err != nil {
				return nil, fmt.Errorf("malformed commit: %w", err)
			}
			c.Tree[path] = fp

		case strings.HasPrefix(line, "parent "):
			fp, err := ParseFingerprint(strings.TrimPrefix(line, "parent "))
			if err != nil {
				return nil, fmt.Errorf("malformed commit: invalid parent fingerprint: %w", err)
			}
			c.Parents = append(c.Parents, fp)

		case strings.HasPrefix(line, "author "):
			identity, ts, err := parsePersonLine(strings.TrimPrefix(line, "author "))
			if err != nil {
				return nil, fmt.Errorf("malformed commit: invalid author: %w", err)
			}
			c.Author = identity
			c.Timestamp = ts

		case strings.HasPrefix(line, "committer "):
			identity, ts, err := parsePersonLine(strings.TrimPrefix(line, "committer "))
			if err != nil {
				return nil, fmt.Errorf("malformed commit: invalid committer: %w", err)
			}
			c.Committer = identity
			c.Timestamp = ts

		default:
			return nil, fmt.Errorf("malformed commit: unrecognized header line %q", line)
		}
	}

	if messageStart != -1 && messageStart <= len(lines) {
		c.Message = strings.Join(lines[messageStart:], "\n")
	}

	return c, nil
}

func parseBlobLine(line string) (Fingerprint, string, error) {
	rest := strings.TrimPrefix(line, "blob ")
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected 'blob <fingerprint> <path>', got %q", line)
	}
	fp, err := ParseFingerprint(parts[0])
	if err != nil {
		return "", "", err
	}
	return fp, parts[1], nil
}

// parsePersonLine parses "<name> <email> <YYYY-MM-DD HH:MM:SS>" into an
// Identity and the trailing timestamp string. Name may itself contain
// spaces, so the timestamp (always two fixed-width fields) and email
// (the single unbracketed token before it, as Serialize writes it) are
// peeled off the tail.
func parsePersonLine(s string) (Identity, string, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return Identity{}, "", fmt.Errorf("expected '<name> <email> <date> <time>', got %q", s)
	}

	timePart := fields[len(fields)-1]
	datePart := fields[len(fields)-2]
	email := fields[len(fields)-3]
	name := strings.Join(fields[:len(fields)-3], " ")

	return Identity{Name: name, Email: email}, datePart + " " + timePart, nil
}
