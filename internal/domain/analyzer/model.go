package analyzer

import (
	"context"
	"encoding/json"
	"image/color"
	"net/url"

	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
)

// ProductRequest is the payload of the analyze-product endpoint.
type ProductRequest struct {
	URL string `json:"url"`
}

// PhotoRequest is the payload of the analyze-photo endpoint. Image is either raw
// base64 or a data URL.
type PhotoRequest struct {
	Image string `json:"image"`
}

// ProductAnalysis is the outcome of analysing a product page.
type ProductAnalysis struct {
	URL         string
	ImageURL    string
	Title       string
	Description string
	Attributes  attributes.ClothingAttributes
}

// MarshalJSON flattens the attribute record into the response envelope.
func (p ProductAnalysis) MarshalJSON() ([]byte, error) {
	a := p.Attributes
	d := a.Details
	return json.Marshal(productEnvelope{
		Success:        true,
		ImageURL:       p.ImageURL,
		Title:          p.Title,
		Description:    p.Description,
		Category:       a.Category,
		Style:          a.Style,
		Color:          a.Color,
		Material:       a.Material,
		Season:         a.Season,
		Formality:      a.Formality,
		Fit:            a.Fit,
		Pattern:        a.Pattern,
		Brand:          a.Brand,
		Fabric:         d.Fabric,
		Care:           d.Care,
		Features:       d.Features,
		Occasion:       d.Occasion,
		Neckline:       d.Neckline,
		Sleeve:         d.Sleeve,
		Length:         d.Length,
		Closure:        d.Closure,
		Sustainability: d.Sustainability,
		Measurements:   d.Measurements,
	})
}

type productEnvelope struct {
	Success        bool                 `json:"success"`
	ImageURL       string               `json:"imageUrl"`
	Title          string               `json:"title,omitempty"`
	Description    string               `json:"description,omitempty"`
	Category       attributes.Category  `json:"category"`
	Style          string               `json:"style"`
	Color          string               `json:"color"`
	Material       string               `json:"material"`
	Season         attributes.Season    `json:"season"`
	Formality      attributes.Formality `json:"formality"`
	Fit            attributes.Fit       `json:"fit"`
	Pattern        string               `json:"pattern"`
	Brand          string               `json:"brand"`
	Fabric         string               `json:"fabric"`
	Care           []string             `json:"care"`
	Features       []string             `json:"features"`
	Occasion       []string             `json:"occasion"`
	Neckline       string               `json:"neckline,omitempty"`
	Sleeve         string               `json:"sleeve,omitempty"`
	Length         string               `json:"length,omitempty"`
	Closure        string               `json:"closure,omitempty"`
	Sustainability []string             `json:"sustainability"`
	Measurements   map[string]string    `json:"measurements"`
}

// PhotoAnalysis is the outcome of analysing an uploaded photo.
type PhotoAnalysis struct {
	Success     bool                          `json:"success"`
	ImageURL    string                        `json:"imageUrl"`
	ProductInfo attributes.ClothingAttributes `json:"productInfo"`
	// PhotoKey is the storage key when the photo was kept server side.
	PhotoKey string `json:"-"`
}

// Page is a fetched product page.
type Page struct {
	URL  *url.URL
	HTML []byte
}

// PageFetcher retrieves product pages. Non-2xx responses are errors.
type PageFetcher interface {
	Fetch(ctx context.Context, target *url.URL) (Page, error)
}

// Document is the text and metadata pulled out of a page.
type Document struct {
	Text        string
	Title       string
	Description string
	ImageURL    string
	DOMBrand    string
	MetaBrand   string
}

// DocumentReader parses a fetched page.
type DocumentReader interface {
	Read(page Page) (Document, error)
}

// DecodedImage is an uploaded photo after decoding.
type DecodedImage struct {
	Width       int
	Height      int
	Dominant    color.Color
	ContentType string
	Data        []byte
	DataURL     string
}

// ImageDecoder turns base64 or data URL input into a DecodedImage.
type ImageDecoder interface {
	Decode(input string) (DecodedImage, error)
}

// ImageStorage persists photo bytes and returns a URL for them.
type ImageStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Cache keeps recent product analyses keyed by URL.
type Cache interface {
	Get(ctx context.Context, key string) (ProductAnalysis, bool)
	Set(ctx context.Context, key string, value ProductAnalysis)
}
