package analyzer

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

// Service analyses product pages and photos into clothing attributes.
type Service interface {
	AnalyzeProduct(ctx context.Context, req ProductRequest) (ProductAnalysis, error)
	AnalyzePhoto(ctx context.Context, req PhotoRequest) (PhotoAnalysis, error)
}

type service struct {
	cfg     Config
	fetcher PageFetcher
	reader  DocumentReader
	decoder ImageDecoder
	storage ImageStorage
	cache   Cache
	logger  *slog.Logger
}

// NewService wires the analyzer. storage and cache may be nil.
func NewService(cfg Config, fetcher PageFetcher, reader DocumentReader, decoder ImageDecoder, storage ImageStorage, cache Cache, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		fetcher: fetcher,
		reader:  reader,
		decoder: decoder,
		storage: storage,
		cache:   cache,
		logger:  logger.With("component", "analyzer.service"),
	}
}

func (s *service) AnalyzeProduct(ctx context.Context, req ProductRequest) (ProductAnalysis, error) {
	raw := strings.TrimSpace(req.URL)
	if raw == "" {
		return ProductAnalysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "URL is required", nil)
	}
	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return ProductAnalysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "URL must be an absolute http(s) address", err)
	}
	key := target.String()

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.logger.Debug("product analysis cache hit", "url", key)
			return cached, nil
		}
	}

	page, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		s.logger.Warn("product fetch failed", "url", key, "error", err)
		return ProductAnalysis{}, apperrors.Wrap(apperrors.CodeFetchError, err.Error(), err)
	}

	doc, err := s.reader.Read(page)
	if err != nil {
		return ProductAnalysis{}, apperrors.Wrap(apperrors.CodeExtractionError, "Failed to analyze product", err)
	}

	attrs := attributes.Extract(doc.Text)
	pageURL := key
	if page.URL != nil {
		pageURL = page.URL.String()
	}
	attrs.Brand = attributes.ResolveBrand(doc.DOMBrand, doc.MetaBrand, key)

	result := ProductAnalysis{
		URL:         pageURL,
		ImageURL:    resolveReference(page.URL, doc.ImageURL),
		Title:       doc.Title,
		Description: doc.Description,
		Attributes:  attrs,
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}
	s.logger.Info("product analysed", "url", key, "category", attrs.Category, "brand", attrs.Brand)
	return result, nil
}

func (s *service) AnalyzePhoto(ctx context.Context, req PhotoRequest) (PhotoAnalysis, error) {
	if strings.TrimSpace(req.Image) == "" {
		return PhotoAnalysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Image data is required", nil)
	}

	img, err := s.decoder.Decode(req.Image)
	if err != nil {
		return PhotoAnalysis{}, apperrors.Wrap(apperrors.CodeExtractionError, "Failed to analyze image: "+err.Error(), err)
	}

	attrs := attributes.FromPhoto(attributes.PhotoProfile{
		Width:    img.Width,
		Height:   img.Height,
		Dominant: img.Dominant,
	})

	result := PhotoAnalysis{Success: true, ImageURL: img.DataURL, ProductInfo: attrs}
	if s.cfg.StorePhotos && s.storage != nil {
		key := s.cfg.PhotoKeyPrefix + uuid.NewString() + extensionFor(img.ContentType)
		stored, err := s.storage.Put(ctx, key, img.ContentType, img.Data)
		if err != nil {
			return PhotoAnalysis{}, apperrors.Wrap(apperrors.CodeStorageError, "Failed to store image", err)
		}
		result.ImageURL = stored
		result.PhotoKey = key
	}

	s.logger.Info("photo analysed", "width", img.Width, "height", img.Height, "category", attrs.Category, "color", attrs.Color)
	return result, nil
}

// resolveReference makes ref absolute against base. Empty stays empty.
func resolveReference(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
