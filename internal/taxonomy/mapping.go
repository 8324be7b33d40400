package taxonomy

import (
	"fmt"
	"strings"
)

// OutputFormat is the fixed instruction handed to the downstream prompt
// generator with every successful parameter mapping.
const OutputFormat = "60-80 words, natural sentence flow, vivid artistic language, " +
	"ending with 'highly detailed, 8k, satellite imagery aesthetic'"

// unknownPlaceholder stands in for missing descriptive fields in guidance
// text, which degrades rather than fails.
const unknownPlaceholder = "Unknown"

// Characteristic is one named descriptive axis of an imagery profile.
type Characteristic struct {
	Name  string
	Value string
}

// Characteristics returns the profile's eight descriptive axes in the fixed
// blend order. Strength selection takes a prefix of this slice, so the order
// is part of the mapping contract.
func (p ImageryProfile) Characteristics() []Characteristic {
	return []Characteristic{
		{"structure", p.Structure},
		{"material", p.Material},
		{"color", p.Color},
		{"texture", p.Texture},
		{"composition", p.Composition},
		{"style", p.Style},
		{"quality", p.Quality},
		{"mood", p.Mood},
	}
}

// AltitudeDetail is the altitude portion of a mapping result.
type AltitudeDetail struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Scale       string `json:"scale"`
	Context     string `json:"context"`
}

// EmphasisDetail is the feature-emphasis portion of a mapping result.
type EmphasisDetail struct {
	Type  string `json:"type"`
	Focus string `json:"focus"`
}

// StrengthDetail is the aesthetic-strength portion of a mapping result.
type StrengthDetail struct {
	Type                string `json:"type"`
	Approach            string `json:"approach"`
	CharacteristicCount int    `json:"characteristic_count"`
}

// MappedParameters is the full deterministic mapping for one valid
// combination of the four taxonomy inputs.
type MappedParameters struct {
	ImageryType                 string            `json:"imagery_type"`
	ProfileName                 string            `json:"profile_name"`
	AltitudePerspective         AltitudeDetail    `json:"altitude_perspective"`
	FeatureEmphasis             EmphasisDetail    `json:"feature_emphasis"`
	AestheticStrength           StrengthDetail    `json:"aesthetic_strength"`
	SelectedCharacteristics     map[string]string `json:"selected_characteristics"`
	AllAvailableCharacteristics map[string]string `json:"all_available_characteristics"`
	Examples                    string            `json:"examples"`
	OutputFormat                string            `json:"output_format"`
}

// UnknownKeyError reports an identifier that does not exist in its category
// table. It is a structured miss, not a failure: callers surface it in a
// normal response payload.
type UnknownKeyError struct {
	Category Category
	Input    string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("Unknown %s: %s", e.Category, e.Input)
}

// MapParameters validates all four inputs and, when every one resolves,
// assembles the deterministic mapping. Validation is exhaustive: every
// invalid input contributes one message, so a caller can correct all
// mistakes in a single round trip. On any validation error the mapping is
// nil and only the messages are returned.
func (t *Taxonomy) MapParameters(imageryType, altitude, featureEmphasis, strength string) (*MappedParameters, []string) {
	imageryID, profile, imageryOK := t.Profile(imageryType)
	altitudeID, altitudeRec, altitudeOK := t.Altitude(altitude)
	emphasisID, emphasisRec, emphasisOK := t.Emphasis(featureEmphasis)
	strengthID, strengthRec, strengthOK := t.Strength(strength)

	var errs []string
	if !imageryOK {
		errs = append(errs, (&UnknownKeyError{CategoryImagery, imageryType}).Error())
	}
	if !altitudeOK {
		errs = append(errs, (&UnknownKeyError{CategoryAltitude, altitude}).Error())
	}
	if !emphasisOK {
		errs = append(errs, (&UnknownKeyError{CategoryEmphasis, featureEmphasis}).Error())
	}
	if !strengthOK {
		errs = append(errs, (&UnknownKeyError{CategoryStrength, strength}).Error())
	}
	if len(errs) > 0 {
		return nil, errs
	}

	all := profile.Characteristics()
	count := strengthRec.Characteristics
	if count > len(all) {
		count = len(all)
	}

	selected := make(map[string]string, count)
	for _, c := range all[:count] {
		selected[c.Name] = c.Value
	}
	available := make(map[string]string, len(all))
	for _, c := range all {
		available[c.Name] = c.Value
	}

	return &MappedParameters{
		ImageryType: imageryID,
		ProfileName: profile.Name,
		AltitudePerspective: AltitudeDetail{
			Type:        altitudeID,
			Description: altitudeRec.Description,
			Scale:       altitudeRec.Scale,
			Context:     altitudeRec.Context,
		},
		FeatureEmphasis: EmphasisDetail{
			Type:  emphasisID,
			Focus: emphasisRec.Focus,
		},
		AestheticStrength: StrengthDetail{
			Type:                strengthID,
			Approach:            strengthRec.Approach,
			CharacteristicCount: count,
		},
		SelectedCharacteristics:     selected,
		AllAvailableCharacteristics: available,
		Examples:                    profile.Examples,
		OutputFormat:                OutputFormat,
	}, nil
}

// EnhancementGuidance renders a human-readable guidance block for the given
// combination. The imagery type must resolve; the other three inputs degrade
// to an "Unknown" placeholder in the text when they do not match, because
// guidance is meant to degrade rather than block.
func (t *Taxonomy) EnhancementGuidance(imageryType, altitude, featureEmphasis, strength string) (string, error) {
	_, profile, ok := t.Profile(imageryType)
	if !ok {
		return "", &UnknownKeyError{CategoryImagery, imageryType}
	}

	altitudeLine := unknownPlaceholder
	if _, a, ok := t.Altitude(altitude); ok {
		altitudeLine = a.Description
	}
	emphasisLine := unknownPlaceholder
	if _, e, ok := t.Emphasis(featureEmphasis); ok {
		emphasisLine = e.Focus
	}
	strengthLine := unknownPlaceholder
	if _, s, ok := t.Strength(strength); ok {
		strengthLine = s.Approach
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SATELLITE IMAGERY ENHANCEMENT GUIDANCE\n\n")
	fmt.Fprintf(&b, "Imagery Type: %s\n", profile.Name)
	fmt.Fprintf(&b, "Altitude Perspective: %s\n", altitudeLine)
	fmt.Fprintf(&b, "Feature Emphasis: %s\n", emphasisLine)
	fmt.Fprintf(&b, "Aesthetic Strength: %s\n\n", strengthLine)
	fmt.Fprintf(&b, "Key Visual Elements:\n")
	fmt.Fprintf(&b, "- Colors: %s\n", profile.Color)
	fmt.Fprintf(&b, "- Textures: %s\n", profile.Texture)
	fmt.Fprintf(&b, "- Mood: %s\n\n", profile.Mood)
	fmt.Fprintf(&b, "Examples to draw from: %s\n\n", profile.Examples)
	b.WriteString(`Remember:
1. Preserve the user's core concept completely
2. Use vivid, artistic language
3. Emphasize HOW it looks (colors, patterns, perspective), not WHAT it is
4. End with "highly detailed, 8k, satellite imagery aesthetic"
5. Never add subjects the user didn't request`)

	return b.String(), nil
}
