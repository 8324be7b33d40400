// Package taxonomy holds the fixed satellite-imagery aesthetic taxonomy and
// answers lookup, mapping, and guidance queries against it. The four category
// tables are loaded once at startup and are read-only afterwards, so they are
// safe to share across concurrent tool calls without locking.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category identifies one of the four taxonomy tables. Its value is the
// human-readable label used in unknown-key messages.
type Category string

const (
	CategoryImagery  Category = "imagery type"
	CategoryAltitude Category = "altitude"
	CategoryEmphasis Category = "feature emphasis"
	CategoryStrength Category = "aesthetic strength"
)

// maxCharacteristics caps a strength's characteristic count at the number of
// descriptive axes an imagery profile carries.
const maxCharacteristics = 8

// ImageryProfile describes one satellite sensor aesthetic across its eight
// characteristic axes plus a display name and example imagery.
type ImageryProfile struct {
	Name        string `yaml:"name" json:"name"`
	Structure   string `yaml:"structure" json:"structure"`
	Material    string `yaml:"material" json:"material"`
	Color       string `yaml:"color" json:"color"`
	Texture     string `yaml:"texture" json:"texture"`
	Composition string `yaml:"composition" json:"composition"`
	Style       string `yaml:"style" json:"style"`
	Quality     string `yaml:"quality" json:"quality"`
	Mood        string `yaml:"mood" json:"mood"`
	Examples    string `yaml:"examples" json:"examples"`
}

// AltitudePerspective describes the implied vantage of the simulated capture.
type AltitudePerspective struct {
	Description string `yaml:"description" json:"description"`
	Scale       string `yaml:"scale" json:"scale"`
	Context     string `yaml:"context" json:"context"`
}

// FeatureEmphasis names which kind of real-world feature the enhancement
// should foreground.
type FeatureEmphasis struct {
	Focus string `yaml:"focus" json:"focus"`
}

// AestheticStrength controls how many profile characteristics are blended
// into the output.
type AestheticStrength struct {
	Characteristics int    `yaml:"characteristics" json:"characteristics"`
	Approach        string `yaml:"approach" json:"approach"`
}

// Taxonomy is the immutable store of all four category tables. Fields are
// unexported so no caller can mutate the tables after load; access goes
// through the query methods, which copy anything they hand out.
type Taxonomy struct {
	imageryOrder  []string
	imagery       map[string]ImageryProfile
	altitudeOrder []string
	altitudes     map[string]AltitudePerspective
	emphasisOrder []string
	emphases      map[string]FeatureEmphasis
	strengthOrder []string
	strengths     map[string]AestheticStrength
}

// Normalize canonicalizes an incoming identifier: lowercase, spaces replaced
// with underscores. Lookup is exact-match on the normalized form.
func Normalize(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), " ", "_")
}

// Load parses the dataset embedded in the binary.
func Load() (*Taxonomy, error) {
	return Parse(defaultDataset)
}

// LoadFile parses a taxonomy dataset from an external file, for deployments
// that override the embedded one.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// document mirrors the four required top-level dataset keys. Values stay as
// raw nodes so per-category decoding can preserve declaration order.
type document struct {
	ImageryProfiles      yaml.Node `yaml:"imagery_profiles"`
	AltitudePerspectives yaml.Node `yaml:"altitude_perspectives"`
	FeatureEmphasis      yaml.Node `yaml:"feature_emphasis"`
	AestheticStrength    yaml.Node `yaml:"aesthetic_strength"`
}

// Parse decodes and validates a taxonomy dataset. Every category must be
// present and every record field non-empty; a dataset that fails here is a
// startup-fatal condition for the server.
func Parse(data []byte) (*Taxonomy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal taxonomy: %w", err)
	}

	t := &Taxonomy{
		imagery:   make(map[string]ImageryProfile),
		altitudes: make(map[string]AltitudePerspective),
		emphases:  make(map[string]FeatureEmphasis),
		strengths: make(map[string]AestheticStrength),
	}

	var err error
	if t.imageryOrder, err = decodeCategory(&doc.ImageryProfiles, "imagery_profiles", t.imagery); err != nil {
		return nil, err
	}
	if t.altitudeOrder, err = decodeCategory(&doc.AltitudePerspectives, "altitude_perspectives", t.altitudes); err != nil {
		return nil, err
	}
	if t.emphasisOrder, err = decodeCategory(&doc.FeatureEmphasis, "feature_emphasis", t.emphases); err != nil {
		return nil, err
	}
	if t.strengthOrder, err = decodeCategory(&doc.AestheticStrength, "aesthetic_strength", t.strengths); err != nil {
		return nil, err
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// decodeCategory decodes one top-level mapping into records keyed by id,
// returning the ids in declaration order.
func decodeCategory[T any](node *yaml.Node, name string, out map[string]T) ([]string, error) {
	if node.IsZero() {
		return nil, fmt.Errorf("taxonomy missing required category %q", name)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("category %q must be a mapping", name)
	}

	order := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		if _, dup := out[id]; dup {
			return nil, fmt.Errorf("category %q: duplicate id %q", name, id)
		}
		var rec T
		if err := node.Content[i+1].Decode(&rec); err != nil {
			return nil, fmt.Errorf("category %q: record %q: %w", name, id, err)
		}
		out[id] = rec
		order = append(order, id)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("category %q is empty", name)
	}
	return order, nil
}

func (t *Taxonomy) validate() error {
	for id, p := range t.imagery {
		fields := map[string]string{
			"name": p.Name, "structure": p.Structure, "material": p.Material,
			"color": p.Color, "texture": p.Texture, "composition": p.Composition,
			"style": p.Style, "quality": p.Quality, "mood": p.Mood, "examples": p.Examples,
		}
		for field, v := range fields {
			if v == "" {
				return fmt.Errorf("imagery profile %q: field %q is empty", id, field)
			}
		}
	}
	for id, a := range t.altitudes {
		if a.Description == "" || a.Scale == "" || a.Context == "" {
			return fmt.Errorf("altitude perspective %q has an empty field", id)
		}
	}
	for id, e := range t.emphases {
		if e.Focus == "" {
			return fmt.Errorf("feature emphasis %q has an empty focus", id)
		}
	}
	for id, s := range t.strengths {
		if s.Characteristics <= 0 || s.Characteristics > maxCharacteristics {
			return fmt.Errorf("aesthetic strength %q: characteristics must be in 1..%d, got %d",
				id, maxCharacteristics, s.Characteristics)
		}
		if s.Approach == "" {
			return fmt.Errorf("aesthetic strength %q has an empty approach", id)
		}
	}
	return nil
}

// ImageryTypes returns all imagery-type ids in declaration order.
func (t *Taxonomy) ImageryTypes() []string {
	return append([]string(nil), t.imageryOrder...)
}

// AltitudeTypes returns all altitude-perspective ids in declaration order.
func (t *Taxonomy) AltitudeTypes() []string {
	return append([]string(nil), t.altitudeOrder...)
}

// EmphasisTypes returns all feature-emphasis ids in declaration order.
func (t *Taxonomy) EmphasisTypes() []string {
	return append([]string(nil), t.emphasisOrder...)
}

// StrengthTypes returns all aesthetic-strength ids in declaration order.
func (t *Taxonomy) StrengthTypes() []string {
	return append([]string(nil), t.strengthOrder...)
}

// Profile resolves an imagery type. The input is normalized first; the
// normalized id is returned alongside the record.
func (t *Taxonomy) Profile(imageryType string) (string, ImageryProfile, bool) {
	id := Normalize(imageryType)
	p, ok := t.imagery[id]
	return id, p, ok
}

// Altitude resolves an altitude perspective from a raw identifier.
func (t *Taxonomy) Altitude(altitude string) (string, AltitudePerspective, bool) {
	id := Normalize(altitude)
	a, ok := t.altitudes[id]
	return id, a, ok
}

// Emphasis resolves a feature emphasis from a raw identifier.
func (t *Taxonomy) Emphasis(emphasis string) (string, FeatureEmphasis, bool) {
	id := Normalize(emphasis)
	e, ok := t.emphases[id]
	return id, e, ok
}

// Strength resolves an aesthetic strength from a raw identifier.
func (t *Taxonomy) Strength(strength string) (string, AestheticStrength, bool) {
	id := Normalize(strength)
	s, ok := t.strengths[id]
	return id, s, ok
}

// AltitudePerspectives returns a copy of the altitude table.
func (t *Taxonomy) AltitudePerspectives() map[string]AltitudePerspective {
	out := make(map[string]AltitudePerspective, len(t.altitudes))
	for k, v := range t.altitudes {
		out[k] = v
	}
	return out
}

// FeatureEmphases returns a copy of the feature-emphasis table.
func (t *Taxonomy) FeatureEmphases() map[string]FeatureEmphasis {
	out := make(map[string]FeatureEmphasis, len(t.emphases))
	for k, v := range t.emphases {
		out[k] = v
	}
	return out
}

// AestheticStrengths returns a copy of the strength table.
func (t *Taxonomy) AestheticStrengths() map[string]AestheticStrength {
	out := make(map[string]AestheticStrength, len(t.strengths))
	for k, v := range t.strengths {
		out[k] = v
	}
	return out
}

// Counts returns the number of records per category, in taxonomy order:
// imagery profiles, altitudes, emphases, strengths.
func (t *Taxonomy) Counts() (int, int, int, int) {
	return len(t.imagery), len(t.altitudes), len(t.emphases), len(t.strengths)
}
