package i18n

import "sync"

// Context is the read-only view of the preferences handed to renderers.
type Context struct {
	Language Language
	Theme    Theme
	T        *Table
}

// Provider owns the mutable language and theme. Toggles are only reachable
// through the provider; everything downstream receives a Context.
type Provider struct {
	catalog *Catalog

	mu    sync.Mutex
	lang  Language
	theme Theme
	subs  []func(Context)
}

// NewProvider returns a provider starting at lang and theme.
func NewProvider(catalog *Catalog, lang Language, theme Theme) *Provider {
	return &Provider{catalog: catalog, lang: lang, theme: theme}
}

// Context returns the current preferences and their table.
func (p *Provider) Context() Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contextLocked()
}

func (p *Provider) contextLocked() Context {
	return Context{
		Language: p.lang,
		Theme:    p.theme,
		T:        p.catalog.Table(p.lang, p.theme),
	}
}

// Subscribe registers f to be called with the new context after every
// change.
func (p *Provider) Subscribe(f func(Context)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, f)
}

// ToggleLanguage switches between Portuguese and English.
func (p *Provider) ToggleLanguage() Context {
	return p.update(func() {
		if p.lang == Portuguese {
			p.lang = English
		} else {
			p.lang = Portuguese
		}
	})
}

// ToggleTheme switches between dark and light.
func (p *Provider) ToggleTheme() Context {
	return p.update(func() {
		if p.theme == Dark {
			p.theme = Light
		} else {
			p.theme = Dark
		}
	})
}

// SetTheme sets the theme directly.
func (p *Provider) SetTheme(theme Theme) Context {
	return p.update(func() { p.theme = theme })
}

func (p *Provider) update(mutate func()) Context {
	p.mu.Lock()
	mutate()
	ctx := p.contextLocked()
	subs := append([]func(Context){}, p.subs...)
	p.mu.Unlock()

	for _, f := range subs {
		f(ctx)
	}
	return ctx
}
