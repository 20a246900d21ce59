package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
)

// AnalyzeProduct extracts clothing attributes from a product page.
func (h *Handler) AnalyzeProduct(c *gin.Context) {
	var req analyzer.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.analyzerSvc.AnalyzeProduct(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AnalyzePhoto derives clothing attributes from an uploaded photo.
func (h *Handler) AnalyzePhoto(c *gin.Context) {
	var req analyzer.PhotoRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.analyzerSvc.AnalyzePhoto(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}
