package wardrobe

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
	"github.com/yanqian/outfit-advisor/pkg/util"
)

// Service manages wardrobe items and style preferences.
type Service interface {
	List(ctx context.Context, owner string) ([]Item, error)
	ListByCategory(ctx context.Context, owner, category string) ([]Item, error)
	Get(ctx context.Context, owner, id string) (Item, error)
	Add(ctx context.Context, owner string, req AddItemRequest) (Item, error)
	Remove(ctx context.Context, owner, id string) error

	Preferences(ctx context.Context, owner string) ([]StylePreference, error)
	SavePreference(ctx context.Context, owner string, pref StylePreference) (StylePreference, error)
	RemovePreference(ctx context.Context, owner, placeID string) error
}

type service struct {
	items    Repository
	prefs    PreferenceRepository
	analyzer ItemAnalyzer
	photos   PhotoStore
	logger   *slog.Logger
	newID    func() string
}

// NewService wires the wardrobe domain. photos may be nil when uploads are
// not kept server side.
func NewService(items Repository, prefs PreferenceRepository, analyzer ItemAnalyzer, photos PhotoStore, logger *slog.Logger) Service {
	return &service{
		items:    items,
		prefs:    prefs,
		analyzer: analyzer,
		photos:   photos,
		logger:   logger.With("component", "wardrobe.service"),
		newID:    uuid.NewString,
	}
}

func (s *service) List(ctx context.Context, owner string) ([]Item, error) {
	items, err := s.items.List(ctx, ownerOrDefault(owner))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageError, "failed to load wardrobe", err)
	}
	return items, nil
}

func (s *service) ListByCategory(ctx context.Context, owner, category string) ([]Item, error) {
	items, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return items, nil
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(string(item.Attributes.Category), category) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *service) Get(ctx context.Context, owner, id string) (Item, error) {
	items, err := s.List(ctx, owner)
	if err != nil {
		return Item{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, apperrors.Wrap(apperrors.CodeNotFound, "wardrobe item not found", nil)
}

func (s *service) Add(ctx context.Context, owner string, req AddItemRequest) (Item, error) {
	owner = ownerOrDefault(owner)
	item, err := s.buildItem(ctx, req)
	if err != nil {
		return Item{}, err
	}

	items, err := s.items.List(ctx, owner)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorageError, "failed to load wardrobe", err)
	}
	items = append(items, item)
	if err := s.items.Save(ctx, owner, items); err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorageError, "failed to save wardrobe", err)
	}
	s.logger.Info("wardrobe item added", "owner", owner, "id", item.ID, "source", item.Source, "category", item.Attributes.Category)
	return item, nil
}

func (s *service) buildItem(ctx context.Context, req AddItemRequest) (Item, error) {
	sources := 0
	for _, set := range []bool{req.Attributes != nil, strings.TrimSpace(req.URL) != "", strings.TrimSpace(req.Image) != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "exactly one of attributes, url or image is required", nil)
	}

	item := Item{ID: s.newID(), ImageURL: strings.TrimSpace(req.ImageURL), CreatedAt: util.NowUTC()}
	switch {
	case req.Attributes != nil:
		item.Source = SourceManual
		item.Attributes = attributes.Normalize(*req.Attributes)
	case strings.TrimSpace(req.URL) != "":
		if s.analyzer == nil {
			return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "url analysis is not available", nil)
		}
		analysis, err := s.analyzer.AnalyzeProduct(ctx, analyzer.ProductRequest{URL: req.URL})
		if err != nil {
			return Item{}, err
		}
		item.Source = SourceURL
		item.Attributes = analysis.Attributes
		if item.ImageURL == "" {
			item.ImageURL = analysis.ImageURL
		}
	default:
		if s.analyzer == nil {
			return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "photo analysis is not available", nil)
		}
		analysis, err := s.analyzer.AnalyzePhoto(ctx, analyzer.PhotoRequest{Image: req.Image})
		if err != nil {
			return Item{}, err
		}
		item.Source = SourcePhoto
		item.Attributes = analysis.ProductInfo
		item.PhotoKey = analysis.PhotoKey
		if item.ImageURL == "" {
			item.ImageURL = analysis.ImageURL
		}
	}
	return item, nil
}

func (s *service) Remove(ctx context.Context, owner, id string) error {
	owner = ownerOrDefault(owner)
	items, err := s.items.List(ctx, owner)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorageError, "failed to load wardrobe", err)
	}
	kept := make([]Item, 0, len(items))
	var removed Item
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		} else {
			removed = item
		}
	}
	if len(kept) == len(items) {
		return apperrors.Wrap(apperrors.CodeNotFound, "wardrobe item not found", nil)
	}
	if err := s.items.Save(ctx, owner, kept); err != nil {
		return apperrors.Wrap(apperrors.CodeStorageError, "failed to save wardrobe", err)
	}
	if removed.PhotoKey != "" && s.photos != nil {
		// The item is already gone; an orphaned blob is only logged.
		if err := s.photos.Delete(ctx, removed.PhotoKey); err != nil {
			s.logger.Warn("photo delete failed", "owner", owner, "id", id, "key", removed.PhotoKey, "error", err)
		}
	}
	s.logger.Info("wardrobe item removed", "owner", owner, "id", id)
	return nil
}

func (s *service) Preferences(ctx context.Context, owner string) ([]StylePreference, error) {
	prefs, err := s.prefs.ListPreferences(ctx, ownerOrDefault(owner))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageError, "failed to load style preferences", err)
	}
	return prefs, nil
}

func (s *service) SavePreference(ctx context.Context, owner string, pref StylePreference) (StylePreference, error) {
	owner = ownerOrDefault(owner)
	pref.PlaceID = strings.TrimSpace(pref.PlaceID)
	if pref.PlaceID == "" {
		return StylePreference{}, apperrors.Wrap(apperrors.CodeInvalidInput, "placeId is required", nil)
	}
	if pref.Styles == nil {
		pref.Styles = []StyleChoice{}
	}

	prefs, err := s.prefs.ListPreferences(ctx, owner)
	if err != nil {
		return StylePreference{}, apperrors.Wrap(apperrors.CodeStorageError, "failed to load style preferences", err)
	}
	replaced := false
	for i := range prefs {
		if prefs[i].PlaceID == pref.PlaceID {
			prefs[i] = pref
			replaced = true
			break
		}
	}
	if !replaced {
		prefs = append(prefs, pref)
	}
	if err := s.prefs.SavePreferences(ctx, owner, prefs); err != nil {
		return StylePreference{}, apperrors.Wrap(apperrors.CodeStorageError, "failed to save style preferences", err)
	}
	return pref, nil
}

func (s *service) RemovePreference(ctx context.Context, owner, placeID string) error {
	owner = ownerOrDefault(owner)
	prefs, err := s.prefs.ListPreferences(ctx, owner)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorageError, "failed to load style preferences", err)
	}
	kept := make([]StylePreference, 0, len(prefs))
	for _, p := range prefs {
		if p.PlaceID != placeID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(prefs) {
		return apperrors.Wrap(apperrors.CodeNotFound, "style preference not found", nil)
	}
	if err := s.prefs.SavePreferences(ctx, owner, kept); err != nil {
		return apperrors.Wrap(apperrors.CodeStorageError, "failed to save style preferences", err)
	}
	return nil
}

func ownerOrDefault(owner string) string {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return DefaultOwner
	}
	return owner
}
