package attributes

import "strings"

// Extract derives a ClothingAttributes record from free text. It never fails;
// fields without a matching rule keep their defaults.
func Extract(text string) ClothingAttributes {
	text = strings.ToLower(text)
	attrs := newAttributes()

	if v, ok := firstMatch(categoryRules, text); ok {
		attrs.Category = v
	}
	if v, ok := firstMatch(styleRules, text); ok {
		attrs.Style = v
	}
	if v, ok := firstMatch(colorRules, text); ok {
		attrs.Color = v
	}
	if v, ok := firstMatch(materialRules, text); ok {
		attrs.Material = v
	}
	if v, ok := firstMatch(seasonRules, text); ok {
		attrs.Season = v
	}
	if v, ok := firstMatch(formalityRules, text); ok {
		attrs.Formality = v
	}
	if v, ok := firstMatch(fitRules, text); ok {
		attrs.Fit = v
	}
	if v, ok := firstMatch(patternRules, text); ok {
		attrs.Pattern = v
	}

	d := &attrs.Details
	d.Fabric = attrs.Material
	d.Occasion = occasionFor(attrs.Formality)
	d.Features = present(featureKeywords, text)
	d.Care = present(careKeywords, text)
	d.Sustainability = present(sustainabilityKeywords, text)
	d.Neckline, _ = firstMatch(necklineRules, text)
	d.Sleeve, _ = firstMatch(sleeveRules, text)
	d.Length, _ = firstMatch(lengthRules, text)
	d.Closure, _ = firstMatch(closureRules, text)
	d.Measurements = extractMeasurements(text)

	return attrs
}

func extractMeasurements(text string) map[string]string {
	out := map[string]string{}
	for _, dim := range measurementDimensions {
		m := measurementPatterns[dim].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		out[dim] = m[1] + m[2]
	}
	return out
}
