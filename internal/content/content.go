// Package content is the portfolio's static catalog: profile, skills grid
// and project gallery. Display strings live in the i18n tables; this package
// only carries what is the same in every language.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var catalogYAML []byte

// Status is a project's progress.
type Status string

const (
	Completed     Status = "completed"
	InDevelopment Status = "inDevelopment"
	Planning      Status = "planning"
)

// Tech is one skills-grid tile.
type Tech struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

// Category groups techs under a translated heading.
type Category struct {
	Key   string `yaml:"key"`
	Icon  string `yaml:"icon"`
	Techs []Tech `yaml:"techs"`
}

// Project is one gallery card. Github and Demo are optional.
type Project struct {
	Key    string   `yaml:"key"`
	Techs  []string `yaml:"techs"`
	Status Status   `yaml:"status"`
	Github string   `yaml:"github"`
	Demo   string   `yaml:"demo"`
}

// HasLinks reports whether the card shows any button.
func (p Project) HasLinks() bool { return p.Github != "" || p.Demo != "" }

// Profile is the owner's contact card.
type Profile struct {
	Name     string `yaml:"name"`
	Initial  string `yaml:"initial"`
	Image    string `yaml:"image"`
	Email    string `yaml:"email"`
	WhatsApp string `yaml:"whatsapp"`
	LinkedIn string `yaml:"linkedin"`
	Github   string `yaml:"github"`
}

// Catalog is the parsed content file.
type Catalog struct {
	Profile    Profile    `yaml:"profile"`
	Categories []Category `yaml:"categories"`
	Projects   []Project  `yaml:"projects"`

	techs map[string]Tech
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if c.Profile.Initial == "" {
		return nil, errors.New("catalog: profile initial is required")
	}
	c.techs = make(map[string]Tech)
	for _, cat := range c.Categories {
		for _, t := range cat.Techs {
			c.techs[t.Name] = t
		}
	}
	for _, p := range c.Projects {
		switch p.Status {
		case Completed, InDevelopment, Planning:
		default:
			return nil, fmt.Errorf("catalog: project %s has unknown status %q", p.Key, p.Status)
		}
	}
	return &c, nil
}

// Tech returns the tile for name. Techs missing from the skills grid get a
// neutral wrench tile.
func (c *Catalog) Tech(name string) Tech {
	if t, ok := c.techs[name]; ok {
		return t
	}
	return Tech{Name: name, Icon: "🔧", Color: "from-gray-600 to-gray-800"}
}

// Avatar is what the about section shows for the profile picture.
type Avatar struct {
	Src      string
	Initial  string
	HasImage bool
}

// Avatar resolves the profile picture against the served image directory.
// A missing file falls back to the initial.
func (c *Catalog) Avatar(images fs.FS, prefix string) Avatar {
	a := Avatar{Initial: c.Profile.Initial}
	if c.Profile.Image == "" || images == nil {
		return a
	}
	if _, err := fs.Stat(images, c.Profile.Image); err != nil {
		return a
	}
	a.Src = prefix + "/" + c.Profile.Image
	a.HasImage = true
	return a
}
