package outfit

import (
	"sort"
	"strings"

	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

// MaxItems is the size of a generated outfit.
const MaxItems = 3

// Score rates one item against the answers. Signals are additive and an item
// matching nothing scores 0.
func Score(item wardrobe.Item, answers Answers) int {
	attrs := item.Attributes
	score := 0

	if occ, ok := answers[QuestionOccasion]; ok && !occ.IsZero() {
		occasion := strings.ToLower(occ.String())
		if (strings.Contains(occasion, "work") && attrs.Formality == attributes.FormalityBusiness) ||
			(strings.Contains(occasion, "party") && attrs.Formality == attributes.FormalityFormal) ||
			(strings.Contains(occasion, "casual") && attrs.Formality == attributes.FormalityCasual) {
			score += 2
		}
	}

	if style, ok := answers[QuestionStyle]; ok && style.IsList {
		itemStyle := strings.ToLower(attrs.Style)
		for _, choice := range style.Choices {
			if strings.Contains(itemStyle, strings.ToLower(choice)) {
				score += 2
				break
			}
		}
	}

	if weather, ok := answers[QuestionWeather]; ok && weather.IsList && len(weather.Choices) > 0 {
		material := strings.ToLower(attrs.Material)
		switch strings.ToLower(weather.Choices[0]) {
		case "hot":
			if strings.Contains(material, "cotton") {
				score++
			}
		case "cold":
			if strings.Contains(material, "wool") {
				score++
			}
		case "rainy":
			if strings.Contains(material, "waterproof") {
				score++
			}
		}
	}

	return score
}

// SelectTop returns up to n items ordered by descending score. Equal scores
// keep their wardrobe order.
func SelectTop(items []wardrobe.Item, answers Answers, n int) []wardrobe.Item {
	type scored struct {
		item  wardrobe.Item
		score int
	}
	ranked := make([]scored, len(items))
	for i, item := range items {
		ranked[i] = scored{item: item, score: Score(item, answers)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	out := make([]wardrobe.Item, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

// ScoreAndSelect picks the best MaxItems items for the answers.
func ScoreAndSelect(items []wardrobe.Item, answers Answers) []wardrobe.Item {
	return SelectTop(items, answers, MaxItems)
}
