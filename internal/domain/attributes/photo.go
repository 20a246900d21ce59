package attributes

import (
	"fmt"
	"image/color"
)

// photoFallbackText stands in for page text when the source is an image.
const photoFallbackText = "casual cotton machine wash"

// PhotoProfile is what the photo path knows about an image.
type PhotoProfile struct {
	Width    int
	Height   int
	Dominant color.Color
}

// FromPhoto builds attributes for an uploaded photo. Category comes from the
// aspect ratio, not from text.
func FromPhoto(p PhotoProfile) ClothingAttributes {
	attrs := Extract(photoFallbackText)
	attrs.Category = CategoryForAspectRatio(p.Width, p.Height)
	if p.Dominant != nil {
		attrs.Color = HexColor(p.Dominant)
	}
	return attrs
}

// CategoryForAspectRatio maps width/height to a category. A zero height is
// treated as square.
func CategoryForAspectRatio(width, height int) Category {
	ratio := 1.0
	if height > 0 {
		ratio = float64(width) / float64(height)
	}
	switch {
	case ratio > 1.5:
		return CategoryAccessories
	case ratio < 0.5:
		return CategoryDresses
	case ratio >= 0.8 && ratio <= 1.2:
		return CategoryTops
	default:
		return CategoryBottoms
	}
}

// HexColor formats c as #rrggbb.
func HexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
