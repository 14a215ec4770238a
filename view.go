package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/config"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/content"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/live"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/shuffle"
)

const (
	langCookie  = "lang"
	themeCookie = "theme"

	// A year, in seconds.
	prefMaxAge = 365 * 24 * 3600
)

// site holds everything the handlers share.
type site struct {
	cfg     *config.Config
	log     *zap.Logger
	texts   *i18n.Catalog
	catalog *content.Catalog
	images  fs.FS
	hub     *live.Hub
	hasher  *clientHasher
	started time.Time
}

func newSite(cfg *config.Config, log *zap.Logger, hub *live.Hub) (*site, error) {
	texts, err := i18n.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}
	catalog, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	hasher, err := newClientHasher()
	if err != nil {
		return nil, err
	}
	return &site{
		cfg:     cfg,
		log:     log,
		texts:   texts,
		catalog: catalog,
		images:  os.DirFS(cfg.Server.ImagesDir),
		hub:     hub,
		hasher:  hasher,
		started: time.Now(),
	}, nil
}

// preferences reads the visitor's language and theme. Cookies win, then
// Accept-Language, then the configured defaults.
func (s *site) preferences(c *gin.Context) (i18n.Language, i18n.Theme) {
	lang := i18n.ParseLanguage(s.cfg.Site.DefaultLanguage)
	if negotiated, ok := i18n.Negotiate(c.GetHeader("Accept-Language")); ok {
		lang = negotiated
	}
	if v, err := c.Cookie(langCookie); err == nil {
		lang = i18n.ParseLanguage(v)
	}

	theme := i18n.ParseTheme(s.cfg.Site.DefaultTheme)
	if v, err := c.Cookie(themeCookie); err == nil {
		theme = i18n.ParseTheme(v)
	}
	return lang, theme
}

func (s *site) provider(c *gin.Context) *i18n.Provider {
	lang, theme := s.preferences(c)
	p := i18n.NewProvider(s.texts, lang, theme)
	p.Subscribe(func(ctx i18n.Context) {
		c.SetCookie(langCookie, string(ctx.Language), prefMaxAge, "/", "", s.cfg.Server.SecureCookie, true)
		c.SetCookie(themeCookie, string(ctx.Theme), prefMaxAge, "/", "", s.cfg.Server.SecureCookie, true)
	})
	return p
}

func (s *site) toggleLanguage(c *gin.Context) {
	ctx := s.provider(c).ToggleLanguage()
	s.log.Debug("language toggled", zap.String("language", string(ctx.Language)))
	refresh(c)
}

func (s *site) toggleTheme(c *gin.Context) {
	ctx := s.provider(c).ToggleTheme()
	s.log.Debug("theme toggled", zap.String("theme", string(ctx.Theme)))
	refresh(c)
}

// refresh asks HTMX to reload the page so it renders from the new table.
// Plain form posts get a redirect instead.
func refresh(c *gin.Context) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type projectView struct {
	content.Project
	Title       string
	Description template.HTML
	StatusLabel string
	Techs       []content.Tech
}

type categoryView struct {
	content.Category
	Title string
}

// page is the data index.html renders.
type page struct {
	Lang       string
	Theme      string
	Dark       bool
	Text       *i18n.Table
	Profile    content.Profile
	Avatar     content.Avatar
	About      []template.HTML
	Traits     []string
	Projects   []projectView
	Categories []categoryView
	Left       shuffle.View
	Right      shuffle.View
	Year       int
}

func (s *site) pageData(ctx i18n.Context) page {
	t := ctx.T
	p := page{
		Lang:    string(ctx.Language),
		Theme:   string(ctx.Theme),
		Dark:    ctx.Theme == i18n.Dark,
		Text:    t,
		Profile: s.catalog.Profile,
		Avatar:  s.catalog.Avatar(s.images, "/images"),
		About: []template.HTML{
			content.Markdown(t.T("about.text1")),
			content.Markdown(t.T("about.text2")),
		},
		Traits: t.List("about.traits"),
		Year:   time.Now().Year(),
	}

	for _, proj := range s.catalog.Projects {
		v := projectView{
			Project:     proj,
			Title:       t.T("projects.items." + proj.Key + ".title"),
			Description: content.Markdown(t.T("projects.items." + proj.Key + ".description")),
			StatusLabel: t.T("projects.status." + string(proj.Status)),
		}
		for _, name := range proj.Techs {
			v.Techs = append(v.Techs, s.catalog.Tech(name))
		}
		p.Projects = append(p.Projects, v)
	}
	for _, cat := range s.catalog.Categories {
		p.Categories = append(p.Categories, categoryView{
			Category: cat,
			Title:    t.T("skills.categories." + cat.Key),
		})
	}

	// The columns start on the first word with the page's initial dark
	// background; the live channel takes over once connected.
	first := shuffle.Frame{Glyphs: shuffle.DefaultWords[0].Strings(), Active: shuffle.NoPosition}
	p.Left = shuffle.Render(first, "left", true, shuffle.ParseVariant(s.cfg.Site.LeftVariant))
	p.Right = shuffle.Render(first, "right", true, shuffle.ParseVariant(s.cfg.Site.RightVariant))
	return p
}

func (s *site) index(c *gin.Context) {
	lang, theme := s.preferences(c)
	ctx := i18n.NewProvider(s.texts, lang, theme).Context()
	c.HTML(http.StatusOK, "index.html", s.pageData(ctx))
}

func (s *site) liveSettings(lang i18n.Language, theme i18n.Theme) live.Settings {
	return live.Settings{
		Language:  lang,
		Theme:     theme,
		Typed:     s.texts.Table(lang, theme).List("hero.typed"),
		Animation: s.cfg.Animation,
		Typing:    s.cfg.Typing,
		Left:      shuffle.ParseVariant(s.cfg.Site.LeftVariant),
		Right:     shuffle.ParseVariant(s.cfg.Site.RightVariant),
		Queue:     s.cfg.Live.Queue,
	}
}
