package wardrobe

import (
	"context"
	"time"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
)

// DefaultOwner is the profile used when a request names none.
const DefaultOwner = "local"

// Source records how an item entered the wardrobe.
type Source string

const (
	SourceManual Source = "manual"
	SourceURL    Source = "url"
	SourcePhoto  Source = "photo"
)

// Item is a garment in a wardrobe. Items are immutable once stored.
type Item struct {
	ID         string                        `json:"id"`
	ImageURL   string                        `json:"imageUrl"`
	Attributes attributes.ClothingAttributes `json:"attributes"`
	Source     Source                        `json:"source,omitempty"`
	PhotoKey   string                        `json:"photoKey,omitempty"`
	CreatedAt  time.Time                     `json:"createdAt"`
}

// AddItemRequest carries exactly one of Attributes, URL or Image.
type AddItemRequest struct {
	ImageURL   string                         `json:"imageUrl"`
	Attributes *attributes.ClothingAttributes `json:"attributes,omitempty"`
	URL        string                         `json:"url,omitempty"`
	Image      string                         `json:"image,omitempty"`
}

// StylePreference is a saved look tied to a place the user visits.
type StylePreference struct {
	PlaceID   string        `json:"placeId"`
	PlaceName string        `json:"placeName"`
	Styles    []StyleChoice `json:"styles"`
}

// StyleChoice is one style picked for a place.
type StyleChoice struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Repository stores wardrobe items per owner. Writes replace the whole owner
// collection and the last write wins.
type Repository interface {
	List(ctx context.Context, owner string) ([]Item, error)
	Save(ctx context.Context, owner string, items []Item) error
}

// PreferenceRepository stores style preferences per owner with the same
// whole-collection contract as Repository.
type PreferenceRepository interface {
	ListPreferences(ctx context.Context, owner string) ([]StylePreference, error)
	SavePreferences(ctx context.Context, owner string, prefs []StylePreference) error
}

// ItemAnalyzer is the subset of the analyzer the wardrobe needs.
type ItemAnalyzer interface {
	AnalyzeProduct(ctx context.Context, req analyzer.ProductRequest) (analyzer.ProductAnalysis, error)
	AnalyzePhoto(ctx context.Context, req analyzer.PhotoRequest) (analyzer.PhotoAnalysis, error)
}

// PhotoStore deletes uploaded photos owned by wardrobe items.
type PhotoStore interface {
	Delete(ctx context.Context, key string) error
}
