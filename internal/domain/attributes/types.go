package attributes

// Category is the garment family. Exactly one category applies to an item.
type Category string

const (
	CategoryTops        Category = "Tops"
	CategoryBottoms     Category = "Bottoms"
	CategoryDresses     Category = "Dresses"
	CategoryOuterwear   Category = "Outerwear"
	CategoryShoes       Category = "Shoes"
	CategoryAccessories Category = "Accessories"
	CategoryUnknown     Category = "Unknown"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryTops, CategoryBottoms, CategoryDresses, CategoryOuterwear,
	CategoryShoes, CategoryAccessories, CategoryUnknown,
}

// Formality is the coarse dress code of an item.
type Formality string

const (
	FormalityCasual   Formality = "casual"
	FormalityBusiness Formality = "business"
	FormalityFormal   Formality = "formal"
)

// Fit describes how the garment sits on the body.
type Fit string

const (
	FitSlim    Fit = "slim"
	FitRegular Fit = "regular"
	FitLoose   Fit = "loose"
)

// Season names the season a garment is meant for.
type Season string

const (
	SeasonSummer Season = "Summer"
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonFall   Season = "Fall"
	SeasonAll    Season = "All Season"
)

const (
	// Unknown is the fallback for colour and material.
	Unknown = "Unknown"

	defaultStyle   = "casual"
	defaultPattern = "solid"
)

// ClothingAttributes is the structured record produced for a garment.
type ClothingAttributes struct {
	Category  Category  `json:"category"`
	Style     string    `json:"style"`
	Color     string    `json:"color"`
	Material  string    `json:"material"`
	Season    Season    `json:"season"`
	Formality Formality `json:"formality"`
	Fit       Fit       `json:"fit"`
	Pattern   string    `json:"pattern"`
	Brand     string    `json:"brand,omitempty"`
	Details   Details   `json:"details"`
}

// Details carries the secondary attributes of a garment.
type Details struct {
	Fabric         string            `json:"fabric"`
	Features       []string          `json:"features"`
	Care           []string          `json:"care"`
	Occasion       []string          `json:"occasion"`
	Neckline       string            `json:"neckline,omitempty"`
	Sleeve         string            `json:"sleeve,omitempty"`
	Length         string            `json:"length,omitempty"`
	Closure        string            `json:"closure,omitempty"`
	Sustainability []string          `json:"sustainability"`
	Measurements   map[string]string `json:"measurements"`
}

// newAttributes returns a record with every field at its default.
func newAttributes() ClothingAttributes {
	return ClothingAttributes{
		Category:  CategoryUnknown,
		Style:     defaultStyle,
		Color:     Unknown,
		Material:  Unknown,
		Season:    SeasonAll,
		Formality: FormalityCasual,
		Fit:       FitRegular,
		Pattern:   defaultPattern,
		Details: Details{
			Fabric:         Unknown,
			Features:       []string{},
			Care:           []string{},
			Occasion:       occasionFor(FormalityCasual),
			Sustainability: []string{},
			Measurements:   map[string]string{},
		},
	}
}

// Normalize fills any unset field of a with its default, so records built
// outside the extractor (client supplied, older stored data) stay total.
func Normalize(a ClothingAttributes) ClothingAttributes {
	def := newAttributes()
	if !validCategory(a.Category) {
		a.Category = def.Category
	}
	if a.Style == "" {
		a.Style = def.Style
	}
	if a.Color == "" {
		a.Color = def.Color
	}
	if a.Material == "" {
		a.Material = def.Material
	}
	switch a.Season {
	case SeasonSummer, SeasonWinter, SeasonSpring, SeasonFall, SeasonAll:
	default:
		a.Season = def.Season
	}
	switch a.Formality {
	case FormalityCasual, FormalityBusiness, FormalityFormal:
	default:
		a.Formality = def.Formality
	}
	switch a.Fit {
	case FitSlim, FitRegular, FitLoose:
	default:
		a.Fit = def.Fit
	}
	if a.Pattern == "" {
		a.Pattern = def.Pattern
	}
	if a.Details.Fabric == "" {
		a.Details.Fabric = a.Material
	}
	if a.Details.Features == nil {
		a.Details.Features = []string{}
	}
	if a.Details.Care == nil {
		a.Details.Care = []string{}
	}
	if len(a.Details.Occasion) == 0 {
		a.Details.Occasion = occasionFor(a.Formality)
	}
	if a.Details.Sustainability == nil {
		a.Details.Sustainability = []string{}
	}
	if a.Details.Measurements == nil {
		a.Details.Measurements = map[string]string{}
	}
	return a
}

func validCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the known categories ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, known := range Categories {
		if equalFold(string(known), s) {
			return known, true
		}
	}
	return "", false
}
