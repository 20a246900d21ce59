package attributes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractCasualSummerDress(t *testing.T) {
	attrs := Extract("A casual cotton summer dress with pockets, machine wash")

	require.Equal(t, CategoryDresses, attrs.Category)
	require.Equal(t, "casual", attrs.Style)
	require.Equal(t, "cotton", attrs.Material)
	require.Equal(t, SeasonSummer, attrs.Season)
	require.Equal(t, "solid", attrs.Pattern)
	require.Equal(t, []string{"pockets"}, attrs.Details.Features)
	require.Equal(t, []string{"machine wash"}, attrs.Details.Care)
	require.Equal(t, "cotton", attrs.Details.Fabric)
	require.Equal(t, []string{"casual wear"}, attrs.Details.Occasion)
}

func TestExtractCategoryPriority(t *testing.T) {
	attrs := Extract("shirt dress in linen")
	require.Equal(t, CategoryTops, attrs.Category)
}

func TestExtractDefaults(t *testing.T) {
	attrs := Extract("")

	require.Equal(t, CategoryUnknown, attrs.Category)
	require.Equal(t, "casual", attrs.Style)
	require.Equal(t, Unknown, attrs.Color)
	require.Equal(t, Unknown, attrs.Material)
	require.Equal(t, SeasonAll, attrs.Season)
	require.Equal(t, FormalityCasual, attrs.Formality)
	require.Equal(t, FitRegular, attrs.Fit)
	require.Equal(t, "solid", attrs.Pattern)
	require.Empty(t, attrs.Details.Features)
	require.NotNil(t, attrs.Details.Features)
	require.NotNil(t, attrs.Details.Measurements)
	require.Empty(t, attrs.Details.Neckline)
	require.Empty(t, attrs.Details.Closure)
}

func TestExtractMeasurements(t *testing.T) {
	cases := []struct {
		name string
		text string
		want map[string]string
	}{
		{name: "waist inches", text: "waist: 32in", want: map[string]string{"waist": "32in"}},
		{name: "no unit", text: "waist: 32", want: map[string]string{}},
		{name: "leftmost wins", text: "chest 96 cm, chest: 100cm", want: map[string]string{"chest": "96cm"}},
		{
			name: "several dimensions",
			text: "Length: 70.5 cm Hip 102cm",
			want: map[string]string{"length": "70.5cm", "hip": "102cm"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Extract(tc.text).Details.Measurements)
		})
	}
}

func TestExtractSecondaryAttributes(t *testing.T) {
	attrs := Extract("Slim fitted v-neck long sleeve midi with zipper, buttons and belt. Recycled organic polyester. Hand wash, dry clean only. Striped.")

	require.Equal(t, FitSlim, attrs.Fit)
	require.Equal(t, "v-neck", attrs.Details.Neckline)
	require.Equal(t, "long", attrs.Details.Sleeve)
	require.Equal(t, "midi", attrs.Details.Length)
	require.Equal(t, "zipper", attrs.Details.Closure)
	require.Equal(t, []string{"zipper", "buttons", "belt"}, attrs.Details.Features)
	require.Equal(t, []string{"hand wash", "dry clean"}, attrs.Details.Care)
	require.Equal(t, []string{"organic", "recycled"}, attrs.Details.Sustainability)
	require.Equal(t, "synthetic", attrs.Material)
	require.Equal(t, "striped", attrs.Pattern)
}

func TestExtractFormalityDrivesOccasion(t *testing.T) {
	require.Equal(t, []string{"formal events"}, Extract("evening gown").Details.Occasion)
	require.Equal(t, []string{"work"}, Extract("office blazer").Details.Occasion)
	require.Equal(t, FormalityBusiness, Extract("office blazer").Formality)
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "Navy wool winter coat, loose oversized fit, plaid, pockets, hood. chest: 110cm"
	require.Equal(t, Extract(text), Extract(text))
}

func TestExtractEnumsAlwaysValid(t *testing.T) {
	inputs := []string{
		"", "???", "SHIRT", "jeans in denim", "a fall jacket", "tuxedo for formal evening",
		"sporty workout leggings", "FLORAL silk blouse with buttons", "100% cotton tee",
	}
	for _, in := range inputs {
		attrs := Extract(in)
		require.True(t, validCategory(attrs.Category), in)
		require.Contains(t, []Formality{FormalityCasual, FormalityBusiness, FormalityFormal}, attrs.Formality, in)
		require.Contains(t, []Fit{FitSlim, FitRegular, FitLoose}, attrs.Fit, in)
		require.Contains(t, []Season{SeasonSummer, SeasonWinter, SeasonSpring, SeasonFall, SeasonAll}, attrs.Season, in)
		require.NotEmpty(t, attrs.Style, in)
		require.NotEmpty(t, attrs.Color, in)
		require.NotEmpty(t, attrs.Material, in)
		require.NotEmpty(t, attrs.Pattern, in)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	attrs := Normalize(ClothingAttributes{Category: "Hats", Color: "red", Formality: "black-tie"})

	require.Equal(t, CategoryUnknown, attrs.Category)
	require.Equal(t, "red", attrs.Color)
	require.Equal(t, FormalityCasual, attrs.Formality)
	require.Equal(t, FitRegular, attrs.Fit)
	require.Equal(t, Unknown, attrs.Details.Fabric)
	require.Equal(t, []string{"casual wear"}, attrs.Details.Occasion)
	require.NotNil(t, attrs.Details.Care)
}

func TestNormalizeRejectsUnknownSeason(t *testing.T) {
	attrs := Normalize(ClothingAttributes{Season: "Monsoon"})
	require.Equal(t, SeasonAll, attrs.Season)

	attrs = Normalize(ClothingAttributes{Season: SeasonWinter})
	require.Equal(t, SeasonWinter, attrs.Season)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" tops ")
	require.True(t, ok)
	require.Equal(t, CategoryTops, c)

	_, ok = ParseCategory("hats")
	require.False(t, ok)
}
