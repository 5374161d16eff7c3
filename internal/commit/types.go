package commit

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// CommitType is one entry of the commit type catalog.
type CommitType struct {
	Name        string `json:"name"                  yaml:"name"                  toml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Len returns the length of the type name as counted in the header.
func (t CommitType) Len() int {
	return utf8.RuneCountInString(t.Name)
}

// String renders the type the way selection menus show it.
func (t CommitType) String() string {
	if t.Description == "" {
		return t.Name
	}
	return t.Name + ": " + t.Description
}

// Catalog is the ordered list of commit types a user chooses from.
type Catalog []CommitType

// DefaultCatalog returns the conventional-commit types.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "feat", Description: "A new feature"},
		{Name: "fix", Description: "A bug fix"},
		{Name: "docs", Description: "Documentation only changes"},
		{Name: "style", Description: "Changes that do not affect the meaning of the code (white-space, formatting, missing semi-colons, etc)"},
		{Name: "refactor", Description: "A code change that neither fixes a bug nor adds a feature"},
		{Name: "perf", Description: "A code change that improves performance"},
		{Name: "test", Description: "Adding missing tests or correcting existing tests"},
		{Name: "build", Description: "Changes that affect the build system or external dependencies"},
		{Name: "ci", Description: "Changes to CI configuration files and scripts"},
		{Name: "chore", Description: "Other changes that don't modify src or test files"},
		{Name: "revert", Description: "Reverts a previous commit"},
	}
}

// Lookup returns the type with the given name.
func (c Catalog) Lookup(name string) (CommitType, bool) {
	for _, t := range c {
		if t.Name == name {
			return t, true
		}
	}
	return CommitType{}, false
}

// Index returns the position of the named type, or -1.
func (c Catalog) Index(name string) int {
	for i, t := range c {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the type names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, t := range c {
		names = append(names, t.Name)
	}
	return names
}

// Validate checks that the catalog is usable: at least one entry, no blank
// or duplicate names, no whitespace or header punctuation inside a name.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.New("commit type catalog is empty")
	}
	seen := make(map[string]bool, len(c))
	for i, t := range c {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("commit type #%d has no name", i+1)
		}
		if strings.ContainsAny(t.Name, " \t\n():!") {
			return fmt.Errorf("commit type %q contains whitespace or header punctuation", t.Name)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate commit type %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
