package attributes

import (
	"regexp"
	"strings"
)

// rule maps a keyword group to a value. A rule matches when any keyword is a
// substring of the text.
type rule[T any] struct {
	keywords []string
	value    T
}

func (r rule[T]) matches(text string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// firstMatch evaluates rules in order and stops at the first hit.
func firstMatch[T any](rules []rule[T], text string) (T, bool) {
	for _, r := range rules {
		if r.matches(text) {
			return r.value, true
		}
	}
	var zero T
	return zero, false
}

// present returns every keyword found in text, in declaration order.
func present(keywords []string, text string) []string {
	out := []string{}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func one[T any](value T, keywords ...string) rule[T] {
	return rule[T]{keywords: keywords, value: value}
}

// Rule order is the tie-break policy; do not reorder.
var (
	categoryRules = []rule[Category]{
		one(CategoryTops, "shirt", "top", "blouse"),
		one(CategoryBottoms, "pant", "jean", "trouser"),
		one(CategoryDresses, "dress"),
		one(CategoryOuterwear, "jacket", "coat"),
	}

	styleRules = []rule[string]{
		one("casual", "casual", "everyday", "relaxed", "comfortable"),
		one("formal", "formal", "elegant", "sophisticated", "dressy"),
		one("business", "professional", "office", "workwear", "business"),
		one("sporty", "athletic", "sport", "active", "workout"),
		one("trendy", "fashion", "trendy", "stylish", "modern"),
	}

	colorRules = func() []rule[string] {
		names := []string{
			"black", "white", "red", "blue", "green", "yellow", "purple",
			"pink", "navy", "grey", "brown", "beige", "cream", "orange",
		}
		rules := make([]rule[string], 0, len(names))
		for _, name := range names {
			rules = append(rules, one(name, name))
		}
		return rules
	}()

	materialRules = []rule[string]{
		one("cotton", "cotton", "100% cotton", "organic cotton"),
		one("wool", "wool", "merino", "cashmere"),
		one("synthetic", "polyester", "nylon", "spandex", "elastane"),
		one("silk", "silk"),
		one("linen", "linen"),
		one("leather", "leather", "suede"),
	}

	seasonRules = []rule[Season]{
		one(SeasonSummer, "summer"),
		one(SeasonWinter, "winter"),
		one(SeasonSpring, "spring"),
		one(SeasonFall, "fall", "autumn"),
	}

	formalityRules = []rule[Formality]{
		one(FormalityFormal, "formal", "evening"),
		one(FormalityBusiness, "business", "office"),
	}

	fitRules = []rule[Fit]{
		one(FitSlim, "slim", "fitted"),
		one(FitLoose, "loose", "oversized"),
	}

	patternRules = []rule[string]{
		one("striped", "striped"),
		one("plaid", "plaid"),
		one("floral", "floral"),
		one("checked", "checked"),
		one("solid", "solid"),
		one("printed", "printed"),
		one("polka dot", "polka dot"),
	}

	necklineRules = []rule[string]{
		one("v-neck", "v-neck"),
		one("crew neck", "crew"),
		one("turtleneck", "turtleneck"),
	}

	sleeveRules = []rule[string]{
		one("long", "long sleeve"),
		one("short", "short sleeve"),
		one("sleeveless", "sleeveless"),
	}

	lengthRules = []rule[string]{
		one("mini", "mini"),
		one("midi", "midi"),
		one("maxi", "maxi"),
	}

	closureRules = []rule[string]{
		one("zipper", "zipper"),
		one("buttons", "buttons"),
		one("pullover", "pullover"),
	}

	featureKeywords        = []string{"pockets", "zipper", "buttons", "hood", "collar", "belt"}
	careKeywords           = []string{"machine wash", "hand wash", "dry clean", "iron", "tumble dry"}
	sustainabilityKeywords = []string{"organic", "recycled", "sustainable", "eco-friendly"}
)

// measurementDimensions fixes the scan order of measurementPatterns.
var measurementDimensions = []string{"length", "chest", "waist", "hip"}

var measurementPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(measurementDimensions))
	for _, dim := range measurementDimensions {
		out[dim] = regexp.MustCompile(dim + `[:\s]+([\d.]+)\s*(cm|in)`)
	}
	return out
}()

func occasionFor(f Formality) []string {
	switch f {
	case FormalityFormal:
		return []string{"formal events"}
	case FormalityBusiness:
		return []string{"work"}
	default:
		return []string{"casual wear"}
	}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
