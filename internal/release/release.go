// Package release suggests the next semantic version for a commit.
package release

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/wxxedu/conv-cmt/internal/commit"
)

// Level is the size of a version bump.
type Level int

// Bump levels, smallest first.
const (
	Patch Level = iota
	Minor
	Major
)

func (l Level) String() string {
	switch l {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return "patch"
	}
}

// LevelOf returns the bump a commit calls for: breaking changes are major,
// feat is minor and everything else is a patch.
func LevelOf(c commit.Commit) Level {
	switch {
	case c.IsBreaking():
		return Major
	case c.Type().Name == "feat":
		return Minor
	default:
		return Patch
	}
}

// Next returns tag bumped by level. Tags may omit the leading "v"; the
// result keeps the caller's form. Prerelease and build suffixes are dropped.
func Next(tag string, level Level) (string, error) {
	prefixed := tag
	if !strings.HasPrefix(prefixed, "v") {
		prefixed = "v" + prefixed
	}
	if !semver.IsValid(prefixed) {
		return "", fmt.Errorf("%q is not a semantic version", tag)
	}

	core := strings.TrimPrefix(semver.Canonical(prefixed), "v")
	core, _, _ = strings.Cut(core, "-")
	parts := strings.SplitN(core, ".", 3)
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("%q is not a semantic version: %w", tag, err)
		}
		nums[i] = n
	}

	switch level {
	case Major:
		nums[0], nums[1], nums[2] = nums[0]+1, 0, 0
	case Minor:
		nums[1], nums[2] = nums[1]+1, 0
	default:
		nums[2]++
	}

	next := fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2])
	if strings.HasPrefix(tag, "v") {
		next = "v" + next
	}
	return next, nil
}

// Suggestion is a proposed release for a commit.
type Suggestion struct {
	Level   Level  `json:"-"`
	Tag     string `json:"tag"`
	Version string `json:"version"`
}

// Suggest combines LevelOf and Next. It reports false when tag is empty or
// not a semantic version.
func Suggest(tag string, c commit.Commit) (Suggestion, bool) {
	if tag == "" {
		return Suggestion{}, false
	}
	level := LevelOf(c)
	next, err := Next(tag, level)
	if err != nil {
		return Suggestion{}, false
	}
	return Suggestion{Level: level, Tag: tag, Version: next}, true
}
