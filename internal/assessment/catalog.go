package assessment

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// TopicProfile is the configuration selected for a topic.
type TopicProfile struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Keywords   []string `yaml:"keywords"`
	Dimensions []string `yaml:"dimensions"`
}

// Matches reports whether any of the profile's keywords occurs in topic.
func (p TopicProfile) Matches(topic string) bool {
	for _, kw := range p.Keywords {
		if kw != "" && strings.Contains(topic, kw) {
			return true
		}
	}
	return false
}

// Picks is how many entries a report draws from each text pool.
type Picks struct {
	Strengths       int `yaml:"strengths"`
	Weaknesses      int `yaml:"weaknesses"`
	Recommendations int `yaml:"recommendations"`
}

// CatalogFile is the serialized form of a Catalog.
type CatalogFile struct {
	Profiles        []TopicProfile    `yaml:"profiles"`
	Default         TopicProfile      `yaml:"default"`
	Summaries       map[Band][]string `yaml:"summaries"`
	Descriptions    []string          `yaml:"descriptions"`
	Strengths       []string          `yaml:"strengths"`
	Weaknesses      []string          `yaml:"weaknesses"`
	Recommendations []string          `yaml:"recommendations"`
	Picks           Picks             `yaml:"picks"`
}

// Catalog is the read-only topic configuration and text pools used by the
// Synthesizer. Build one with NewCatalog or LoadCatalog.
type Catalog struct {
	profiles        []TopicProfile
	fallback        TopicProfile
	summaries       map[Band][]*template.Template
	descriptions    []string
	strengths       []string
	weaknesses      []string
	recommendations []string
	picks           Picks
}

// NewCatalog validates f and compiles its summary templates.
func NewCatalog(f CatalogFile) (*Catalog, error) {
	if len(f.Default.Dimensions) == 0 {
		return nil, fmt.Errorf("default profile has no dimensions")
	}
	for i, p := range f.Profiles {
		if len(p.Keywords) == 0 {
			return nil, fmt.Errorf("profile %d (%s): no keywords", i, p.ID)
		}
		if len(p.Dimensions) == 0 {
			return nil, fmt.Errorf("profile %d (%s): no dimensions", i, p.ID)
		}
	}

	c := &Catalog{
		profiles:        append([]TopicProfile(nil), f.Profiles...),
		fallback:        f.Default,
		summaries:       make(map[Band][]*template.Template, len(Bands)),
		descriptions:    dedupe(f.Descriptions),
		strengths:       dedupe(f.Strengths),
		weaknesses:      dedupe(f.Weaknesses),
		recommendations: dedupe(f.Recommendations),
		picks:           f.Picks,
	}

	for band := range f.Summaries {
		if !band.Valid() {
			return nil, fmt.Errorf("unknown summary band %q", band)
		}
	}
	for _, band := range Bands {
		texts := f.Summaries[band]
		if len(texts) == 0 {
			return nil, fmt.Errorf("no summary templates for band %q", band)
		}
		for i, text := range texts {
			tmpl, err := template.New(fmt.Sprintf("%s-%d", band, i)).Parse(text)
			if err != nil {
				return nil, fmt.Errorf("summary %s[%d]: %w", band, i, err)
			}
			// Execution errors such as {{.Name}} only surface at render time.
			if err := tmpl.Execute(io.Discard, summaryData{Topic: "x"}); err != nil {
				return nil, fmt.Errorf("summary %s[%d]: %w", band, i, err)
			}
			c.summaries[band] = append(c.summaries[band], tmpl)
		}
	}

	pools := []struct {
		name string
		pool []string
		n    int
	}{
		{"descriptions", c.descriptions, 1},
		{"strengths", c.strengths, c.picks.Strengths},
		{"weaknesses", c.weaknesses, c.picks.Weaknesses},
		{"recommendations", c.recommendations, c.picks.Recommendations},
	}
	for _, p := range pools {
		if len(p.pool) == 0 {
			return nil, fmt.Errorf("%s pool is empty", p.name)
		}
		if p.n < 1 {
			return nil, fmt.Errorf("%s pick count must be positive, got %d", p.name, p.n)
		}
	}

	return c, nil
}

// LoadCatalog decodes a YAML catalog from r.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f CatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(f)
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer fh.Close()
	return LoadCatalog(fh)
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(builtinCatalog))
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
})

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// Resolve returns the first profile whose keywords match topic, in
// catalog order, or the default profile.
func (c *Catalog) Resolve(topic string) TopicProfile {
	for _, p := range c.profiles {
		if p.Matches(topic) {
			return p
		}
	}
	return c.fallback
}

// Profiles returns the keyed profiles in priority order.
func (c *Catalog) Profiles() []TopicProfile {
	return append([]TopicProfile(nil), c.profiles...)
}

// Picks returns the per-pool pick counts.
func (c *Catalog) Picks() Picks {
	return c.picks
}

// summaryData is what summary templates are rendered with.
type summaryData struct {
	Topic string
}

// summary renders a band's summary template for topic. NewCatalog has
// executed every template once, so rendering does not fail.
func (c *Catalog) summary(band Band, idx int, topic string) string {
	var buf bytes.Buffer
	if err := c.summaries[band][idx].Execute(&buf, summaryData{Topic: topic}); err != nil {
		return topic
	}
	return buf.String()
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
