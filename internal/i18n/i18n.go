// Package i18n localizes the strings conv-cmt shows in interactive sessions.
package i18n

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

//go:embed locales/*.toml
var locales embed.FS

var loadBundle = sync.OnceValues(func() (*goi18n.Bundle, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("reading locales: %w", err)
	}
	for _, entry := range entries {
		path := "locales/" + entry.Name()
		if _, err := bundle.LoadMessageFileFS(locales, path); err != nil {
			return nil, fmt.Errorf("loading locale file %s: %w", path, err)
		}
	}
	return bundle, nil
})

// Translator looks up messages for one language.
type Translator struct {
	localizer *goi18n.Localizer
	tag       language.Tag
}

// New returns a Translator for lang, a BCP 47 tag such as "es" or "en-GB".
// An empty lang selects DefaultLanguage.
func New(lang string) (*Translator, error) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(lang) == "" {
		lang = DefaultLanguage
	}
	tag, err := match(bundle, lang)
	if err != nil {
		return nil, err
	}
	return &Translator{
		localizer: goi18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
	}, nil
}

// MustNew is New for languages already validated by IsSupported.
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// Language returns the matched language tag.
func (t *Translator) Language() string {
	return t.tag.String()
}

// T returns the message id, filled with data. Unknown ids come back as
// the id itself.
func (t *Translator) T(id string, data ...map[string]any) string {
	cfg := &goi18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	return t.localize(cfg, id)
}

// Plural returns the plural form of id for count. Count is available to the
// template as {{.Count}}.
func (t *Translator) Plural(id string, count int, data ...map[string]any) string {
	templateData := map[string]any{"Count": count}
	if len(data) > 0 {
		for k, v := range data[0] {
			templateData[k] = v
		}
	}
	return t.localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: templateData,
	}, id)
}

func (t *Translator) localize(cfg *goi18n.LocalizeConfig, id string) string {
	msg, err := t.localizer.Localize(cfg)
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Languages lists the languages with a bundled message file.
func Languages() []string {
	bundle, err := loadBundle()
	if err != nil {
		return nil
	}
	tags := bundle.LanguageTags()
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}
	return names
}

// IsSupported reports whether lang matches a bundled language.
func IsSupported(lang string) bool {
	bundle, err := loadBundle()
	if err != nil {
		return false
	}
	_, err = match(bundle, lang)
	return err == nil
}

func match(bundle *goi18n.Bundle, lang string) (language.Tag, error) {
	requested, err := language.Parse(lang)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", lang, err)
	}
	supported := bundle.LanguageTags()
	_, index, confidence := language.NewMatcher(supported).Match(requested)
	if confidence == language.No {
		return language.Und, fmt.Errorf("language %q is not supported (available: %s)", lang, strings.Join(Languages(), ", "))
	}
	return supported[index], nil
}
