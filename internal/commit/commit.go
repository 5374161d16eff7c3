package commit

import (
	"encoding/json"
	"strings"
)

// Commit is a validated commit message. It is produced only by
// Builder.Build and never changes afterwards.
type Commit struct {
	commitType  CommitType
	scope       *string
	subject     string
	description *string
	breaking    bool
}

// Type returns the commit type.
func (c Commit) Type() CommitType { return c.commitType }

// Scope returns the scope and whether one was set.
func (c Commit) Scope() (string, bool) {
	if c.scope == nil {
		return "", false
	}
	return *c.scope, true
}

// Subject returns the subject line text.
func (c Commit) Subject() string { return c.subject }

// Description returns the body and whether one was set.
func (c Commit) Description() (string, bool) {
	if c.description == nil {
		return "", false
	}
	return *c.description, true
}

// IsBreaking reports whether the header carries the "!" marker.
func (c Commit) IsBreaking() bool { return c.breaking }

// Header renders the first line: type(scope)!: subject.
func (c Commit) Header() string {
	var sb strings.Builder
	sb.WriteString(c.commitType.Name)
	if c.scope != nil {
		sb.WriteString("(")
		sb.WriteString(*c.scope)
		sb.WriteString(")")
	}
	if c.breaking {
		sb.WriteString("!")
	}
	sb.WriteString(": ")
	sb.WriteString(c.subject)
	return sb.String()
}

// String renders the full message handed to git: the header, then a blank
// line and the description when the description is non-empty.
func (c Commit) String() string {
	if c.description == nil || *c.description == "" {
		return c.Header()
	}
	return c.Header() + "\n\n" + *c.description
}

// commitJSON is the wire shape of a Commit.
type commitJSON struct {
	Type        string `json:"type"`
	Scope       string `json:"scope,omitempty"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	Breaking    bool   `json:"breaking"`
	Header      string `json:"header"`
	Message     string `json:"message"`
}

// MarshalJSON implements json.Marshaler.
func (c Commit) MarshalJSON() ([]byte, error) {
	scope, _ := c.Scope()
	description, _ := c.Description()
	return json.Marshal(commitJSON{
		Type:        c.commitType.Name,
		Scope:       scope,
		Subject:     c.subject,
		Description: description,
		Breaking:    c.breaking,
		Header:      c.Header(),
		Message:     c.String(),
	})
}
