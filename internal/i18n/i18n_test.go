package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog()
	require.NoError(t, err)
	return c
}

func TestCatalogTables(t *testing.T) {
	c := loadCatalog(t)

	pt := c.Table(Portuguese, Dark)
	en := c.Table(English, Dark)
	assert.Equal(t, "Início", pt.T("nav.home"))
	assert.Equal(t, "Home", en.T("nav.home"))
	assert.Equal(t, "Forum HUB", en.T("projects.items.forumhub.title"))
	assert.Len(t, en.List("about.traits"), 7)

	// Both languages define the same keys.
	assert.Equal(t, pt.Keys(), en.Keys())
}

func TestMissingKeyRendersAsKey(t *testing.T) {
	tbl := loadCatalog(t).Table(English, Light)
	assert.Equal(t, "hero.nope", tbl.T("hero.nope"))
	assert.Nil(t, tbl.List("hero.nope"))
}

func TestTypedStringsFollowTheme(t *testing.T) {
	c := loadCatalog(t)

	dark := c.Table(English, Dark).List("hero.typed")
	light := c.Table(English, Light).List("hero.typed")
	require.Len(t, dark, 4)
	assert.Contains(t, dark[0], "text-blue-200")
	assert.Contains(t, light[0], "text-black-800")
	assert.NotContains(t, light[0], highlightToken)
}

func TestProviderToggles(t *testing.T) {
	p := NewProvider(loadCatalog(t), Portuguese, Dark)

	var seen []Context
	p.Subscribe(func(ctx Context) { seen = append(seen, ctx) })

	ctx := p.ToggleLanguage()
	assert.Equal(t, English, ctx.Language)
	assert.Equal(t, "Home", ctx.T.T("nav.home"))

	ctx = p.ToggleTheme()
	assert.Equal(t, Light, ctx.Theme)

	p.ToggleLanguage()
	p.ToggleTheme()
	final := p.Context()
	assert.Equal(t, Portuguese, final.Language)
	assert.Equal(t, Dark, final.Theme)
	assert.Len(t, seen, 4)
}

func TestParse(t *testing.T) {
	assert.Equal(t, English, ParseLanguage(" EN "))
	assert.Equal(t, Portuguese, ParseLanguage("de"))
	assert.Equal(t, Light, ParseTheme("light"))
	assert.Equal(t, Dark, ParseTheme(""))
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   Language
		ok     bool
	}{
		{"", "", false},
		{"en-US,en;q=0.9", English, true},
		{"pt-BR,pt;q=0.9,en;q=0.8", Portuguese, true},
		{"fr-FR,fr;q=0.9", "", false},
		{"fr-FR,en;q=0.5", English, true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := Negotiate(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
