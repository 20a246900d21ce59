package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
	"github.com/yanqian/outfit-advisor/internal/infra/imagestore"
)

// PhotoReader serves stored photos back to clients.
type PhotoReader interface {
	Open(ctx context.Context, key string) (imagestore.Object, error)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	analyzerSvc analyzer.Service
	wardrobeSvc wardrobe.Service
	outfitSvc   outfit.Service
	photos      PhotoReader
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler. photos may be nil when
// uploaded photos are not kept by the server.
func NewHandler(analyzerSvc analyzer.Service, wardrobeSvc wardrobe.Service, outfitSvc outfit.Service, photos PhotoReader, logger *slog.Logger) *Handler {
	return &Handler{
		analyzerSvc: analyzerSvc,
		wardrobeSvc: wardrobeSvc,
		outfitSvc:   outfitSvc,
		photos:      photos,
		logger:      logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON decodes the request body into dst. An empty body leaves dst at its
// zero value so the domain reports the missing field.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", err))
			return false
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return false
	}
	return true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
