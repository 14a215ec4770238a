// Package i18n holds the page's translation tables and the visitor's
// language and theme preferences.
package i18n

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Language is a supported page language.
type Language string

const (
	Portuguese Language = "pt"
	English    Language = "en"
)

// Languages lists the supported languages, default first.
var Languages = []Language{Portuguese, English}

// ParseLanguage returns the language for s, falling back to Portuguese.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English
	default:
		return Portuguese
	}
}

// Theme is the colour scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ParseTheme returns the theme for s, falling back to Dark.
func ParseTheme(s string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(s))) == Light {
		return Light
	}
	return Dark
}

var matcher = language.NewMatcher([]language.Tag{language.Portuguese, language.English})

// Negotiate picks a page language from an Accept-Language header. It
// reports false when the header is malformed or names no supported
// language, leaving the choice to the caller's default.
func Negotiate(acceptLanguage string) (Language, bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return Languages[idx], true
}

//go:embed locales/*.yaml
var localeFS embed.FS

// highlightToken is replaced in list entries with a theme-dependent class.
const highlightToken = "{{highlight}}"

var highlightClass = map[Theme]string{
	Dark:  "text-blue-200",
	Light: "text-black-800",
}

// Table is a flat string table for one language and theme. Nested YAML keys
// are joined with dots.
type Table struct {
	Language Language
	Theme    Theme
	strings  map[string]string
	lists    map[string][]string
}

// T returns the string for key, or the key itself when it is missing.
func (t *Table) T(key string) string {
	if s, ok := t.strings[key]; ok {
		return s
	}
	return key
}

// List returns the string list for key.
func (t *Table) List(key string) []string {
	return t.lists[key]
}

// Keys returns every string key in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.strings))
	for k := range t.strings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type rawTable struct {
	strings map[string]string
	lists   map[string][]string
}

// Catalog is the parsed set of locale files.
type Catalog struct {
	raw map[Language]rawTable
}

// LoadCatalog parses the embedded locale files.
func LoadCatalog() (*Catalog, error) {
	c := &Catalog{raw: make(map[Language]rawTable, len(Languages))}
	for _, lang := range Languages {
		data, err := localeFS.ReadFile("locales/" + string(lang) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("reading locale %s: %w", lang, err)
		}
		raw, err := parseTable(data)
		if err != nil {
			return nil, fmt.Errorf("parsing locale %s: %w", lang, err)
		}
		c.raw[lang] = raw
	}
	return c, nil
}

// Table renders the table for lang under theme.
func (c *Catalog) Table(lang Language, theme Theme) *Table {
	raw := c.raw[lang]
	t := &Table{
		Language: lang,
		Theme:    theme,
		strings:  raw.strings,
		lists:    make(map[string][]string, len(raw.lists)),
	}
	class := highlightClass[theme]
	for k, items := range raw.lists {
		out := make([]string, len(items))
		for i, s := range items {
			out[i] = strings.ReplaceAll(s, highlightToken, class)
		}
		t.lists[k] = out
	}
	return t
}

func parseTable(data []byte) (rawTable, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return rawTable{}, err
	}
	raw := rawTable{strings: map[string]string{}, lists: map[string][]string{}}
	if err := flatten("", doc, raw); err != nil {
		return rawTable{}, err
	}
	return raw, nil
}

func flatten(prefix string, node map[string]any, into rawTable) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case string:
			into.strings[key] = v
		case map[string]any:
			if err := flatten(key, v, into); err != nil {
				return err
			}
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("key %s: list item %v is not a string", key, item)
				}
				items = append(items, s)
			}
			into.lists[key] = items
		default:
			return fmt.Errorf("key %s: unsupported value %T", key, v)
		}
	}
	return nil
}
