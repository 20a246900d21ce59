package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	"github.com/yanqian/outfit-advisor/internal/infra/imagestore"
	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

func TestRouter_AnalyzeProductSuccess(t *testing.T) {
	svc := &stubAnalyzer{
		analyzeProductFn: func(ctx context.Context, req analyzer.ProductRequest) (analyzer.ProductAnalysis, error) {
			require.Equal(t, "https://shop.example.com/p/1", req.URL)
			return analyzer.ProductAnalysis{
				URL:        req.URL,
				ImageURL:   "https://shop.example.com/img.jpg",
				Attributes: attributes.Extract("casual blue cotton shirt with pockets"),
			}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/analyze-product", `{"url":"https://shop.example.com/p/1"}`, newRouterUnderTest(t, routerDeps{analyzer: svc}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, true, got["success"])
	require.Equal(t, "Tops", got["category"])
	require.Equal(t, "blue", got["color"])
	require.Equal(t, "cotton", got["fabric"])
	require.Equal(t, []any{"pockets"}, got["features"])
	require.Equal(t, "https://shop.example.com/img.jpg", got["imageUrl"])
}

func TestRouter_AnalyzeProductMissingURL(t *testing.T) {
	svc := &stubAnalyzer{
		analyzeProductFn: func(ctx context.Context, req analyzer.ProductRequest) (analyzer.ProductAnalysis, error) {
			return analyzer.ProductAnalysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "URL is required", nil)
		},
	}

	recorder := performRequest(http.MethodPost, "/api/analyze-product", `{}`, newRouterUnderTest(t, routerDeps{analyzer: svc}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, false, body["success"])
	require.Equal(t, "URL is required", body["message"])
	require.NotContains(t, body, "details")
}

func TestRouter_AnalyzeProductInvalidJSON(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/analyze-product", `{"url":123}`, newRouterUnderTest(t, routerDeps{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, false, body["success"])
	require.NotEmpty(t, body["message"])
}

func TestRouter_AnalyzeProductFetchFailure(t *testing.T) {
	svc := &stubAnalyzer{
		analyzeProductFn: func(ctx context.Context, req analyzer.ProductRequest) (analyzer.ProductAnalysis, error) {
			return analyzer.ProductAnalysis{}, apperrors.Wrap(apperrors.CodeFetchError, "HTTP error! status: 404", nil)
		},
	}

	recorder := performRequest(http.MethodPost, "/api/analyze-product", `{"url":"https://shop.example.com/gone"}`, newRouterUnderTest(t, routerDeps{analyzer: svc}))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "HTTP error! status: 404", body["message"])
}

func TestRouter_ErrorDetailsExposedWhenEnabled(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	svc := &stubAnalyzer{
		analyzeProductFn: func(ctx context.Context, req analyzer.ProductRequest) (analyzer.ProductAnalysis, error) {
			return analyzer.ProductAnalysis{}, apperrors.Wrap(apperrors.CodeExtractionError, "Failed to analyze product", cause)
		},
	}

	deps := routerDeps{analyzer: svc, exposeDetails: true}
	recorder := performRequest(http.MethodPost, "/api/analyze-product", `{"url":"https://shop.example.com/p"}`, newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "Failed to analyze product", body["message"])
	require.Equal(t, cause.Error(), body["details"])
}

func TestRouter_AnalyzePhotoMissingImage(t *testing.T) {
	svc := &stubAnalyzer{
		analyzePhotoFn: func(ctx context.Context, req analyzer.PhotoRequest) (analyzer.PhotoAnalysis, error) {
			require.Empty(t, req.Image)
			return analyzer.PhotoAnalysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Image data is required", nil)
		},
	}

	recorder := performRequest(http.MethodPost, "/api/analyze-photo", `{"image":""}`, newRouterUnderTest(t, routerDeps{analyzer: svc}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Image data is required", decodeErrorBody(t, recorder.Body.Bytes())["message"])
}

func TestRouter_EmptyBodyReachesDomainValidation(t *testing.T) {
	svc := &stubAnalyzer{
		analyzeProductFn: func(ctx context.Context, req analyzer.ProductRequest) (analyzer.ProductAnalysis, error) {
			require.Empty(t, req.URL)
			return analyzer.ProductAnalysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "URL is required", nil)
		},
		analyzePhotoFn: func(ctx context.Context, req analyzer.PhotoRequest) (analyzer.PhotoAnalysis, error) {
			require.Empty(t, req.Image)
			return analyzer.PhotoAnalysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Image data is required", nil)
		},
	}
	server := newRouterUnderTest(t, routerDeps{analyzer: svc})

	recorder := performRequest(http.MethodPost, "/api/analyze-product", "", server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "URL is required", decodeErrorBody(t, recorder.Body.Bytes())["message"])

	recorder = performRequest(http.MethodPost, "/api/analyze-photo", "", server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Image data is required", decodeErrorBody(t, recorder.Body.Bytes())["message"])
}

func TestRouter_AnalyzePhotoSuccess(t *testing.T) {
	svc := &stubAnalyzer{
		analyzePhotoFn: func(ctx context.Context, req analyzer.PhotoRequest) (analyzer.PhotoAnalysis, error) {
			return analyzer.PhotoAnalysis{Success: true, ImageURL: "data:image/png;base64,AAAA", ProductInfo: attributes.Extract("casual cotton machine wash")}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/analyze-photo", `{"image":"AAAA"}`, newRouterUnderTest(t, routerDeps{analyzer: svc}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got analyzer.PhotoAnalysis
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "cotton", got.ProductInfo.Material)
}

func TestRouter_WardrobeUsesProfileHeader(t *testing.T) {
	var listedOwner, listedCategory, removedID string
	svc := &stubWardrobe{
		listByCategoryFn: func(ctx context.Context, owner, category string) ([]wardrobe.Item, error) {
			listedOwner, listedCategory = owner, category
			return []wardrobe.Item{{ID: "a"}}, nil
		},
		removeFn: func(ctx context.Context, owner, id string) error {
			require.Equal(t, "alice", owner)
			removedID = id
			return nil
		},
	}
	server := newRouterUnderTest(t, routerDeps{wardrobe: svc})

	recorder := performRequestWithProfile(http.MethodGet, "/api/wardrobe?category=tops", "", "alice", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "alice", listedOwner)
	require.Equal(t, "tops", listedCategory)

	var body struct {
		Items []wardrobe.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)

	recorder = performRequestWithProfile(http.MethodDelete, "/api/wardrobe/a", "", "alice", server)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, "a", removedID)
}

func TestRouter_WardrobeDefaultsToLocalProfile(t *testing.T) {
	svc := &stubWardrobe{
		addFn: func(ctx context.Context, owner string, req wardrobe.AddItemRequest) (wardrobe.Item, error) {
			require.Equal(t, wardrobe.DefaultOwner, owner)
			require.Equal(t, "https://shop.example.com/p", req.URL)
			return wardrobe.Item{ID: "new", Source: wardrobe.SourceURL}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/wardrobe", `{"url":"https://shop.example.com/p"}`, newRouterUnderTest(t, routerDeps{wardrobe: svc}))
	require.Equal(t, http.StatusCreated, recorder.Code)
}

func TestRouter_WardrobeItemNotFound(t *testing.T) {
	svc := &stubWardrobe{
		getFn: func(ctx context.Context, owner, id string) (wardrobe.Item, error) {
			return wardrobe.Item{}, apperrors.Wrap(apperrors.CodeNotFound, "Item not found", nil)
		},
	}

	recorder := performRequest(http.MethodGet, "/api/wardrobe/missing", "", newRouterUnderTest(t, routerDeps{wardrobe: svc}))
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "Item not found", decodeErrorBody(t, recorder.Body.Bytes())["message"])
}

func TestRouter_SavePreference(t *testing.T) {
	svc := &stubWardrobe{
		savePreferenceFn: func(ctx context.Context, owner string, pref wardrobe.StylePreference) (wardrobe.StylePreference, error) {
			require.Equal(t, "office", pref.PlaceID)
			require.Len(t, pref.Styles, 1)
			return pref, nil
		},
	}

	payload := `{"placeId":"office","placeName":"Office","styles":[{"name":"Business","description":"Sharp"}]}`
	recorder := performRequest(http.MethodPut, "/api/preferences", payload, newRouterUnderTest(t, routerDeps{wardrobe: svc}))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_GenerateOutfit(t *testing.T) {
	svc := &stubOutfits{
		generateFn: func(ctx context.Context, owner string, req outfit.GenerateRequest) (outfit.ScoredOutfit, error) {
			require.Equal(t, "dinner", req.Answers[outfit.QuestionOccasion].String())
			require.Equal(t, []string{"Elegant"}, req.Answers[outfit.QuestionStyle].Choices)
			return outfit.ScoredOutfit{Description: "Perfect outfit for dinner, matching your style preferences and weather conditions."}, nil
		},
	}

	payload := `{"answers":{"occasion":"dinner","style":["Elegant"]}}`
	recorder := performRequest(http.MethodPost, "/api/outfits/generate", payload, newRouterUnderTest(t, routerDeps{outfits: svc}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got outfit.ScoredOutfit
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Contains(t, got.Description, "dinner")
}

func TestRouter_AnswerAfterResultConflicts(t *testing.T) {
	svc := &stubOutfits{
		answerFn: func(ctx context.Context, owner, id string, req outfit.AnswerRequest) (outfit.SessionView, error) {
			require.Equal(t, "s1", id)
			return outfit.SessionView{}, apperrors.Wrap(apperrors.CodeInvalidState, "Session is not accepting answers", nil)
		},
	}

	recorder := performRequest(http.MethodPost, "/api/outfits/sessions/s1/answers", `{"answer":"work"}`, newRouterUnderTest(t, routerDeps{outfits: svc}))
	require.Equal(t, http.StatusConflict, recorder.Code)
}

func TestRouter_StartSession(t *testing.T) {
	svc := &stubOutfits{
		startSessionFn: func(ctx context.Context, owner string) (outfit.SessionView, error) {
			session := outfit.NewSession("s1", owner, time.Unix(0, 0).UTC())
			q := outfit.Questions()[0]
			return outfit.SessionView{Session: session, Question: &q}, nil
		},
	}

	recorder := performRequestWithProfile(http.MethodPost, "/api/outfits/sessions", "", "bob", newRouterUnderTest(t, routerDeps{outfits: svc}))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var got outfit.SessionView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "bob", got.Owner)
	require.Equal(t, outfit.StateAsking, got.State)
	require.NotNil(t, got.Question)
	require.Equal(t, outfit.QuestionOccasion, got.Question.ID)
}

func TestRouter_ServePhoto(t *testing.T) {
	photos := imagestore.NewMemoryStorage("/api/photos")
	_, err := photos.Put(context.Background(), "photos/a.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	server := newRouterUnderTest(t, routerDeps{photos: photos})

	recorder := performRequest(http.MethodGet, "/api/photos/photos/a.png", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	require.Equal(t, "png-bytes", recorder.Body.String())

	recorder = performRequest(http.MethodGet, "/api/photos/photos/missing.png", "", server)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRouter_BodyLimit(t *testing.T) {
	deps := routerDeps{maxBodyBytes: 16}
	payload := `{"url":"` + strings.Repeat("x", 64) + `"}`
	recorder := performRequest(http.MethodPost, "/api/analyze-product", payload, newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
}

func TestRouter_Health(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/healthz", "", newRouterUnderTest(t, routerDeps{}))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestIPRateLimiter(t *testing.T) {
	now := time.Unix(0, 0)
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2})
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("1.2.3.4"))
	require.True(t, limiter.allow("1.2.3.4"))
	require.False(t, limiter.allow("1.2.3.4"))
	require.True(t, limiter.allow("5.6.7.8"))

	now = now.Add(time.Second)
	require.True(t, limiter.allow("1.2.3.4"))
}

type routerDeps struct {
	analyzer      analyzer.Service
	wardrobe      wardrobe.Service
	outfits       outfit.Service
	photos        PhotoReader
	exposeDetails bool
	maxBodyBytes  int64
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	return performRequestWithProfile(method, path, body, "", server)
}

func performRequestWithProfile(method, path, body, profile string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if profile != "" {
		req.Header.Set(profileHeader, profile)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, deps routerDeps) *http.Server {
	t.Helper()
	if deps.analyzer == nil {
		deps.analyzer = &stubAnalyzer{}
	}
	if deps.wardrobe == nil {
		deps.wardrobe = &stubWardrobe{}
	}
	if deps.outfits == nil {
		deps.outfits = &stubOutfits{}
	}
	handler := NewHandler(deps.analyzer, deps.wardrobe, deps.outfits, deps.photos, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:            ":0",
			ReadTimeout:        time.Second,
			WriteTimeout:       time.Second,
			MaxBodyBytes:       deps.maxBodyBytes,
			ExposeErrorDetails: deps.exposeDetails,
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubAnalyzer struct {
	analyzeProductFn func(ctx context.Context, req analyzer.ProductRequest) (analyzer.ProductAnalysis, error)
	analyzePhotoFn   func(ctx context.Context, req analyzer.PhotoRequest) (analyzer.PhotoAnalysis, error)
}

func (s *stubAnalyzer) AnalyzeProduct(ctx context.Context, req analyzer.ProductRequest) (analyzer.ProductAnalysis, error) {
	if s.analyzeProductFn != nil {
		return s.analyzeProductFn(ctx, req)
	}
	return analyzer.ProductAnalysis{}, nil
}

func (s *stubAnalyzer) AnalyzePhoto(ctx context.Context, req analyzer.PhotoRequest) (analyzer.PhotoAnalysis, error) {
	if s.analyzePhotoFn != nil {
		return s.analyzePhotoFn(ctx, req)
	}
	return analyzer.PhotoAnalysis{}, nil
}

type stubWardrobe struct {
	listByCategoryFn func(ctx context.Context, owner, category string) ([]wardrobe.Item, error)
	getFn            func(ctx context.Context, owner, id string) (wardrobe.Item, error)
	addFn            func(ctx context.Context, owner string, req wardrobe.AddItemRequest) (wardrobe.Item, error)
	removeFn         func(ctx context.Context, owner, id string) error
	savePreferenceFn func(ctx context.Context, owner string, pref wardrobe.StylePreference) (wardrobe.StylePreference, error)
}

func (s *stubWardrobe) List(ctx context.Context, owner string) ([]wardrobe.Item, error) {
	return s.ListByCategory(ctx, owner, "")
}

func (s *stubWardrobe) ListByCategory(ctx context.Context, owner, category string) ([]wardrobe.Item, error) {
	if s.listByCategoryFn != nil {
		return s.listByCategoryFn(ctx, owner, category)
	}
	return nil, nil
}

func (s *stubWardrobe) Get(ctx context.Context, owner, id string) (wardrobe.Item, error) {
	if s.getFn != nil {
		return s.getFn(ctx, owner, id)
	}
	return wardrobe.Item{}, nil
}

func (s *stubWardrobe) Add(ctx context.Context, owner string, req wardrobe.AddItemRequest) (wardrobe.Item, error) {
	if s.addFn != nil {
		return s.addFn(ctx, owner, req)
	}
	return wardrobe.Item{}, nil
}

func (s *stubWardrobe) Remove(ctx context.Context, owner, id string) error {
	if s.removeFn != nil {
		return s.removeFn(ctx, owner, id)
	}
	return nil
}

func (s *stubWardrobe) Preferences(ctx context.Context, owner string) ([]wardrobe.StylePreference, error) {
	return nil, nil
}

func (s *stubWardrobe) SavePreference(ctx context.Context, owner string, pref wardrobe.StylePreference) (wardrobe.StylePreference, error) {
	if s.savePreferenceFn != nil {
		return s.savePreferenceFn(ctx, owner, pref)
	}
	return pref, nil
}

func (s *stubWardrobe) RemovePreference(ctx context.Context, owner, placeID string) error {
	return nil
}

type stubOutfits struct {
	generateFn     func(ctx context.Context, owner string, req outfit.GenerateRequest) (outfit.ScoredOutfit, error)
	startSessionFn func(ctx context.Context, owner string) (outfit.SessionView, error)
	answerFn       func(ctx context.Context, owner, id string, req outfit.AnswerRequest) (outfit.SessionView, error)
}

func (s *stubOutfits) Questions() []outfit.Question {
	return outfit.Questions()
}

func (s *stubOutfits) Generate(ctx context.Context, owner string, req outfit.GenerateRequest) (outfit.ScoredOutfit, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, owner, req)
	}
	return outfit.ScoredOutfit{}, nil
}

func (s *stubOutfits) StartSession(ctx context.Context, owner string) (outfit.SessionView, error) {
	if s.startSessionFn != nil {
		return s.startSessionFn(ctx, owner)
	}
	return outfit.SessionView{}, nil
}

func (s *stubOutfits) Session(ctx context.Context, owner, id string) (outfit.SessionView, error) {
	return outfit.SessionView{}, nil
}

func (s *stubOutfits) Answer(ctx context.Context, owner, id string, req outfit.AnswerRequest) (outfit.SessionView, error) {
	if s.answerFn != nil {
		return s.answerFn(ctx, owner, id, req)
	}
	return outfit.SessionView{}, nil
}

func (s *stubOutfits) Reset(ctx context.Context, owner, id string) (outfit.SessionView, error) {
	return outfit.SessionView{}, nil
}
