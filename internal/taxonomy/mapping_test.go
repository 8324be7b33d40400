package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapParametersStrong(t *testing.T) {
	tax := loadTestTaxonomy(t)

	mapped, errs := tax.MapParameters("false_color_infrared", "orbital", "natural", "strong")
	require.Empty(t, errs)
	require.NotNil(t, mapped)

	assert.Equal(t, "false_color_infrared", mapped.ImageryType)
	assert.Equal(t, "False Color Infrared", mapped.ProfileName)
	assert.Equal(t, "orbital", mapped.AltitudePerspective.Type)
	assert.NotEmpty(t, mapped.AltitudePerspective.Description)
	assert.NotEmpty(t, mapped.AltitudePerspective.Scale)
	assert.NotEmpty(t, mapped.AltitudePerspective.Context)
	assert.Equal(t, "natural", mapped.FeatureEmphasis.Type)
	assert.Equal(t, "strong", mapped.AestheticStrength.Type)
	assert.Equal(t, 6, mapped.AestheticStrength.CharacteristicCount)
	assert.Equal(t, OutputFormat, mapped.OutputFormat)

	// strong selects the first six axes; quality and mood are left out
	require.Len(t, mapped.SelectedCharacteristics, 6)
	_, profile, ok := tax.Profile("false_color_infrared")
	require.True(t, ok)
	for _, c := range profile.Characteristics()[:6] {
		assert.Equal(t, c.Value, mapped.SelectedCharacteristics[c.Name])
	}
	assert.NotContains(t, mapped.SelectedCharacteristics, "quality")
	assert.NotContains(t, mapped.SelectedCharacteristics, "mood")

	assert.Len(t, mapped.AllAvailableCharacteristics, 8)
}

func TestMapParametersSubtle(t *testing.T) {
	tax := loadTestTaxonomy(t)

	mapped, errs := tax.MapParameters("thermal_infrared", "high_altitude", "urban", "subtle")
	require.Empty(t, errs)
	require.Len(t, mapped.SelectedCharacteristics, 2)
	assert.Contains(t, mapped.SelectedCharacteristics, "structure")
	assert.Contains(t, mapped.SelectedCharacteristics, "material")
}

func TestMapParametersNormalizesInputs(t *testing.T) {
	tax := loadTestTaxonomy(t)

	mapped, errs := tax.MapParameters("True Color RGB", "Medium Altitude", "Mixed", "Balanced")
	require.Empty(t, errs)
	assert.Equal(t, "true_color_rgb", mapped.ImageryType)
	assert.Equal(t, "medium_altitude", mapped.AltitudePerspective.Type)
	assert.Equal(t, "mixed", mapped.FeatureEmphasis.Type)
	assert.Equal(t, "balanced", mapped.AestheticStrength.Type)
	assert.Equal(t, 4, mapped.AestheticStrength.CharacteristicCount)
}

func TestMapParametersUnknownImagery(t *testing.T) {
	tax := loadTestTaxonomy(t)

	mapped, errs := tax.MapParameters("Not A Type", "orbital", "natural", "strong")
	assert.Nil(t, mapped)
	require.Len(t, errs, 1)
	assert.Equal(t, "Unknown imagery type: Not A Type", errs[0])
}

func TestMapParametersAllInvalid(t *testing.T) {
	tax := loadTestTaxonomy(t)

	mapped, errs := tax.MapParameters("not_a_type", "not_an_altitude", "x", "y")
	assert.Nil(t, mapped)
	require.Len(t, errs, 4)
	assert.Equal(t, "Unknown imagery type: not_a_type", errs[0])
	assert.Equal(t, "Unknown altitude: not_an_altitude", errs[1])
	assert.Equal(t, "Unknown feature emphasis: x", errs[2])
	assert.Equal(t, "Unknown aesthetic strength: y", errs[3])
}

func TestMapParametersIdempotent(t *testing.T) {
	tax := loadTestTaxonomy(t)

	first, errs := tax.MapParameters("lidar_elevation", "low_altitude", "abstract", "balanced")
	require.Empty(t, errs)
	second, errs := tax.MapParameters("lidar_elevation", "low_altitude", "abstract", "balanced")
	require.Empty(t, errs)
	assert.Equal(t, first, second)
}

func TestEnhancementGuidance(t *testing.T) {
	tax := loadTestTaxonomy(t)

	text, err := tax.EnhancementGuidance("multispectral_agriculture", "orbital", "natural", "balanced")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "SATELLITE IMAGERY ENHANCEMENT GUIDANCE"))
	assert.Contains(t, text, "Imagery Type: Multispectral Agriculture")
	assert.Contains(t, text, "Key Visual Elements:")
	assert.Contains(t, text, "Examples to draw from:")
	assert.Contains(t, text, `End with "highly detailed, 8k, satellite imagery aesthetic"`)
	assert.Contains(t, text, "Never add subjects the user didn't request")
	assert.NotContains(t, text, "Unknown")
}

func TestEnhancementGuidanceDegradesGracefully(t *testing.T) {
	tax := loadTestTaxonomy(t)

	text, err := tax.EnhancementGuidance("true_color_rgb", "not_an_altitude", "natural", "balanced")
	require.NoError(t, err)
	assert.Contains(t, text, "Altitude Perspective: Unknown")
	assert.Contains(t, text, "Imagery Type: True Color RGB")
}

func TestEnhancementGuidanceUnknownImagery(t *testing.T) {
	tax := loadTestTaxonomy(t)

	_, err := tax.EnhancementGuidance("Not A Type", "orbital", "natural", "balanced")
	require.Error(t, err)

	var unknown *UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, CategoryImagery, unknown.Category)
	assert.Equal(t, "Not A Type", unknown.Input)
	assert.Equal(t, "Unknown imagery type: Not A Type", err.Error())
}

func TestCharacteristicOrder(t *testing.T) {
	tax := loadTestTaxonomy(t)

	_, profile, ok := tax.Profile("synthetic_aperture_radar")
	require.True(t, ok)

	names := make([]string, 0, 8)
	for _, c := range profile.Characteristics() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"structure", "material", "color", "texture",
		"composition", "style", "quality", "mood",
	}, names)
}
