// Package config reads and writes a repository's `.minigit/config` file,
// an INI-flavored `[section]\nkey = value` document holding the
// placeholder author identity and the default branch name.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arjunv/minigit/internal/common/errs"
)

const pkg = "config"

// DefaultBranch is the branch `init` attaches HEAD to when none is
// configured.
const DefaultBranch = "master"

// DefaultUserName and DefaultUserEmail are used when a repository has no
// `.minigit/config` identity configured yet.
const (
	DefaultUserName  = "minigit"
	DefaultUserEmail = "minigit@localhost"
)

// Config is the parsed contents of `.minigit/config`.
type Config struct {
	UserName      string
	UserEmail     string
	DefaultBranch string
}

// defaults returns a Config populated with the fallback placeholder
// identity and default branch name.
func defaults() Config {
	return Config{
		UserName:      DefaultUserName,
		UserEmail:     DefaultUserEmail,
		DefaultBranch: DefaultBranch,
	}
}

// Load reads and parses path, returning defaults for any section or key
// that is absent. A missing file is not an error; it also returns
// defaults.
func Load(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errs.New(pkg, errs.CodeInternal, "load", "failed to read config", err)
	}

	section := ""
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch section {
		case "user":
			switch key {
			case "name":
				cfg.UserName = value
			case "email":
				cfg.UserEmail = value
			}
		case "core":
			if key == "defaultBranch" {
				cfg.DefaultBranch = value
			}
		}
	}

	return cfg, nil
}

// Save writes cfg to path in the `[section]\nkey = value` format Load
// parses, via a temp-file-and-rename to avoid a half-written config on
// failure.
func Save(path string, cfg Config) error {
	var buf strings.Builder
	buf.WriteString("[user]\n")
	buf.WriteString("\tname = " + cfg.UserName + "\n")
	buf.WriteString("\temail = " + cfg.UserEmail + "\n")
	buf.WriteString("[core]\n")
	buf.WriteString("\tdefaultBranch = " + cfg.DefaultBranch + "\n")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to create config directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to create temp config file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(buf.String()); err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to write config", err)
	}
	if err := tmp.Close(); err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to close temp config file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errs.New(pkg, errs.CodeInternal, "save", "failed to rename config into place", err)
	}
	return nil
}
