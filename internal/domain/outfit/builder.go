package outfit

import (
	"fmt"
	"strings"

	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

const anyOccasion = "any occasion"

// ScoredOutfit is a generated outfit. It is derived on every request.
type ScoredOutfit struct {
	Items              []wardrobe.Item `json:"items"`
	Description        string          `json:"description"`
	StyleNotes         []string        `json:"styleNotes"`
	ColorPalette       []string        `json:"colorPalette"`
	Occasions          []string        `json:"occasions"`
	WeatherSuitability []string        `json:"weatherSuitability"`
}

var formalityOccasions = map[attributes.Formality][]string{
	attributes.FormalityBusiness: {"Work", "Business meetings"},
	attributes.FormalityFormal:   {"Special events", "Formal gatherings"},
	attributes.FormalityCasual:   {"Daily wear", "Casual outings"},
}

// Build selects items for the answers and derives the outfit summary. An empty
// wardrobe yields an outfit with no items.
func Build(items []wardrobe.Item, answers Answers) ScoredOutfit {
	return describe(ScoreAndSelect(items, answers), answers)
}

func describe(selected []wardrobe.Item, answers Answers) ScoredOutfit {
	palette := newOrderedSet()
	occasions := newOrderedSet()
	weather := newOrderedSet()

	for _, item := range selected {
		attrs := item.Attributes
		palette.add(attrs.Color)
		occasions.add(formalityOccasions[attrs.Formality]...)

		material := strings.ToLower(attrs.Material)
		if strings.Contains(material, "wool") {
			weather.add("Cold weather")
		}
		if strings.Contains(material, "cotton") {
			weather.add("Warm weather")
		}
		if strings.Contains(material, "waterproof") {
			weather.add("Rainy weather")
		}
		if attrs.Season != "" {
			weather.add(fmt.Sprintf("Perfect for %s", attrs.Season))
		}
	}

	occasion := strings.TrimSpace(answers[QuestionOccasion].String())
	if occasion == "" {
		occasion = anyOccasion
	}

	notes := []string{fmt.Sprintf("Coordinated %s color palette", strings.Join(palette.items, ", "))}
	if len(selected) > 0 {
		notes = append(notes, capitalize(string(selected[0].Attributes.Formality))+" ensemble")
	}
	notes = append(notes, "Complementary fits and styles")

	if selected == nil {
		selected = []wardrobe.Item{}
	}
	return ScoredOutfit{
		Items:              selected,
		Description:        fmt.Sprintf("Perfect outfit for %s, matching your style preferences and weather conditions.", occasion),
		StyleNotes:         notes,
		ColorPalette:       palette.items,
		Occasions:          occasions.items,
		WeatherSuitability: weather.items,
	}
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.items = append(s.items, v)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
