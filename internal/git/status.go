package git

import (
	"fmt"
	"strings"
)

// Change is one entry of `git status --porcelain=v1`.
type Change struct {
	Path     string `json:"path"`
	OrigPath string `json:"orig_path,omitempty"`
	Index    byte   `json:"-"`
	Worktree byte   `json:"-"`
}

// Code returns the two-letter status code, e.g. "M " or "??".
func (c Change) Code() string {
	return string([]byte{c.Index, c.Worktree})
}

// Staged reports whether the index differs from HEAD for this path.
func (c Change) Staged() bool {
	return c.Index != ' ' && c.Index != '?' && c.Index != '!'
}

// Untracked reports whether the path is not tracked.
func (c Change) Untracked() bool {
	return c.Index == '?'
}

// Unstaged reports whether the work tree holds changes not in the index.
func (c Change) Unstaged() bool {
	return c.Worktree != ' '
}

// Kind names the change for display.
func (c Change) Kind() string {
	code := c.Index
	if !c.Staged() {
		code = c.Worktree
	}
	switch code {
	case 'M':
		return "modified"
	case 'A':
		return "added"
	case 'D':
		return "deleted"
	case 'R':
		return "renamed"
	case 'C':
		return "copied"
	case 'T':
		return "typechange"
	case 'U':
		return "unmerged"
	case '?':
		return "untracked"
	default:
		return "changed"
	}
}

func (c Change) String() string {
	if c.OrigPath != "" {
		return fmt.Sprintf("%s %s -> %s", c.Code(), c.OrigPath, c.Path)
	}
	return fmt.Sprintf("%s %s", c.Code(), c.Path)
}

// ParseStatus parses `git status --porcelain=v1 -z` output. Rename and copy
// entries carry their source path in the following NUL-separated field.
func ParseStatus(out string) ([]Change, error) {
	fields := strings.Split(out, "\x00")
	changes := make([]Change, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if entry == "" {
			continue
		}
		if len(entry) < 4 || entry[2] != ' ' {
			return nil, fmt.Errorf("malformed status entry %q", entry)
		}
		c := Change{Index: entry[0], Worktree: entry[1], Path: entry[3:]}
		if c.Index == 'R' || c.Index == 'C' {
			if i+1 >= len(fields) || fields[i+1] == "" {
				return nil, fmt.Errorf("status entry %q is missing its source path", entry)
			}
			i++
			c.OrigPath = fields[i]
		}
		changes = append(changes, c)
	}
	return changes, nil
}
