package commit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseStrategy is the case convention enforced on scope and subject text.
// The zero value is Lowercase.
type CaseStrategy int

// Supported case conventions.
const (
	Lowercase CaseStrategy = iota
	Uppercase
	Capitalized
	Unchanged
)

var strategyNames = map[CaseStrategy]string{
	Lowercase:   "lowercase",
	Uppercase:   "uppercase",
	Capitalized: "capitalized",
	Unchanged:   "unchanged",
}

// Strategies lists every supported strategy in declaration order.
func Strategies() []CaseStrategy {
	return []CaseStrategy{Lowercase, Uppercase, Capitalized, Unchanged}
}

// String returns the lowercase name of the strategy.
func (s CaseStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CaseStrategy(%d)", int(s))
}

// ParseCaseStrategy parses a strategy name. Matching is case-insensitive.
func ParseCaseStrategy(name string) (CaseStrategy, error) {
	wanted := strings.ToLower(strings.TrimSpace(name))
	for _, s := range Strategies() {
		if strategyNames[s] == wanted {
			return s, nil
		}
	}
	return Lowercase, fmt.Errorf("unknown case strategy %q (want lowercase, uppercase, capitalized or unchanged)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s CaseStrategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, fmt.Errorf("invalid case strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CaseStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParseCaseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Apply returns text converted to the strategy's convention.
func (s CaseStrategy) Apply(text string) string {
	switch s {
	case Lowercase:
		return cases.Lower(language.Und).String(text)
	case Uppercase:
		return cases.Upper(language.Und).String(text)
	case Capitalized:
		return capitalize(text)
	default:
		return text
	}
}

// Verify reports whether text already satisfies the convention.
func (s CaseStrategy) Verify(text string) bool {
	if s == Unchanged {
		return true
	}
	return s.Apply(text) == text
}

// capitalize title-cases the first rune and lower-cases the rest. The first
// rune is mapped on its own so the result keeps the same number of runes.
func capitalize(text string) string {
	if text == "" {
		return ""
	}
	lower := cases.Lower(language.Und).String(text)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToTitle(first)) + lower[size:]
}
