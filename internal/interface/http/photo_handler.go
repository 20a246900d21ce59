package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/infra/imagestore"
)

// ServePhoto streams a photo kept by the in-process image store.
func (h *Handler) ServePhoto(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if h.photos == nil || key == "" {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "Photo not found", nil))
		return
	}

	obj, err := h.photos.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, imagestore.ErrNotFound) {
			abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "Photo not found", err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "storage_error", "Failed to read photo", err))
		return
	}
	defer obj.Body.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}
