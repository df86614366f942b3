package wisp

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Project is the detail shown in a project card's modal.
type Project struct {
	Title       string   `yaml:"title"`
	Tagline     string   `yaml:"tagline"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	URL         string   `yaml:"url"`
	Year        int      `yaml:"year"`
}

// Catalog is the static set of project details keyed by card title.
type Catalog struct {
	Projects []Project `yaml:"projects"`

	byTitle map[string]int
}

const defaultCatalogYAML = `
projects:
  - title: Orbit
    tagline: Gravity sandbox in the browser
    description: N-body playground with trails and time scrubbing.
    tech: [Go, WebAssembly, WebGL]
    year: 2023
  - title: Lumen
    tagline: Generative light installation
    description: Audio-reactive shader wall driven by a MIDI controller.
    tech: [GLSL, Rust]
    year: 2024
  - title: Drift
    tagline: Ambient typography toy
    description: Letters that scatter like smoke and settle on release.
    tech: [Go, Ebitengine]
    year: 2025
`

// DefaultCatalog returns the details of the stock page's projects.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog([]byte(defaultCatalogYAML))
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog. Titles must be non-empty and unique.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c.byTitle = make(map[string]int, len(c.Projects))
	for i, p := range c.Projects {
		key := catalogKey(p.Title)
		if key == "" {
			return nil, fmt.Errorf("parse catalog: project %d has no title", i)
		}
		if _, dup := c.byTitle[key]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate title %q", p.Title)
		}
		c.byTitle[key] = i
	}
	return &c, nil
}

// Lookup returns the project with the given title. Matching ignores case
// and surrounding whitespace.
func (c *Catalog) Lookup(title string) (*Project, bool) {
	i, ok := c.byTitle[catalogKey(title)]
	if !ok {
		return nil, false
	}
	return &c.Projects[i], true
}

func catalogKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
