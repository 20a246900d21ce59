package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

// ListWardrobe returns the caller's items, optionally filtered by ?category=.
func (h *Handler) ListWardrobe(c *gin.Context) {
	items, err := h.wardrobeSvc.ListByCategory(c.Request.Context(), profileFrom(c), c.Query("category"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetWardrobeItem returns one item.
func (h *Handler) GetWardrobeItem(c *gin.Context) {
	item, err := h.wardrobeSvc.Get(c.Request.Context(), profileFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddWardrobeItem stores a new item from explicit attributes, a product URL or a photo.
func (h *Handler) AddWardrobeItem(c *gin.Context) {
	var req wardrobe.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.wardrobeSvc.Add(c.Request.Context(), profileFrom(c), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) DeleteWardrobeItem(c *gin.Context) {
	if err := h.wardrobeSvc.Remove(c.Request.Context(), profileFrom(c), c.Param("id")); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPreferences returns saved per-place style choices.
func (h *Handler) ListPreferences(c *gin.Context) {
	prefs, err := h.wardrobeSvc.Preferences(c.Request.Context(), profileFrom(c))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// SavePreference upserts the preference for one place.
func (h *Handler) SavePreference(c *gin.Context) {
	var req wardrobe.StylePreference
	if !bindJSON(c, &req) {
		return
	}

	pref, err := h.wardrobeSvc.SavePreference(c.Request.Context(), profileFrom(c), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *Handler) DeletePreference(c *gin.Context) {
	if err := h.wardrobeSvc.RemovePreference(c.Request.Context(), profileFrom(c), c.Param("placeId")); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
