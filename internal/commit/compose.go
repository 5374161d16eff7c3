package commit

import "strings"

// Fields are the raw answers for one commit message.
type Fields struct {
	Type        string `json:"type"                  jsonschema:"commit type name from the catalog"`
	Scope       string `json:"scope,omitempty"       jsonschema:"optional scope of the change"`
	Subject     string `json:"subject"               jsonschema:"short imperative summary"`
	Description string `json:"description,omitempty" jsonschema:"optional message body"`
	Breaking    bool   `json:"breaking,omitempty"    jsonschema:"mark the commit as a breaking change"`
}

// Policy is the set of rules a message is validated against.
type Policy struct {
	Catalog  Catalog
	Strategy CaseStrategy
	MaxLen   int
	// AutoCase converts scope and subject to the strategy's case first.
	AutoCase bool
}

// NewBuilder returns an empty builder using the policy's strategy and
// length limit.
func (p Policy) NewBuilder() *Builder {
	return NewBuilder(p.Strategy, p.MaxLen)
}

// Types returns the policy's catalog, or DefaultCatalog when it is empty.
func (p Policy) Types() Catalog {
	if len(p.Catalog) == 0 {
		return DefaultCatalog()
	}
	return p.Catalog
}

// Compose builds a commit from f without prompting. Blank scope and
// description are left unset. The first validation error is returned.
func (p Policy) Compose(f Fields) (Commit, error) {
	b := p.NewBuilder()
	if name := strings.TrimSpace(f.Type); name != "" {
		t, ok := p.Types().Lookup(name)
		if !ok {
			return Commit{}, &UnknownTypeError{Name: name}
		}
		if err := b.SetType(t); err != nil {
			return Commit{}, err
		}
	}
	if err := b.SetBreaking(f.Breaking); err != nil {
		return Commit{}, err
	}
	if scope := p.normalize(f.Scope); scope != "" {
		if err := b.SetScope(scope); err != nil {
			return Commit{}, err
		}
	}
	if subject := p.normalize(f.Subject); subject != "" {
		if err := b.SetSubject(subject); err != nil {
			return Commit{}, err
		}
	}
	if desc := strings.TrimSpace(f.Description); desc != "" {
		b.SetDescription(desc)
	}
	return b.Build()
}

func (p Policy) normalize(text string) string {
	text = strings.TrimSpace(text)
	if p.AutoCase {
		text = p.Strategy.Apply(text)
	}
	return text
}
