package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

// Questions lists the preference questions in asking order.
func (h *Handler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.outfitSvc.Questions()})
}

// GenerateOutfit scores the wardrobe against a full set of answers.
func (h *Handler) GenerateOutfit(c *gin.Context) {
	var req outfit.GenerateRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.outfitSvc.Generate(c.Request.Context(), profileFrom(c), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// StartSession opens a new question flow.
func (h *Handler) StartSession(c *gin.Context) {
	session, err := h.outfitSvc.StartSession(c.Request.Context(), profileFrom(c))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.outfitSvc.Session(c.Request.Context(), profileFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, session)
}

// AnswerQuestion records the answer to the current question.
func (h *Handler) AnswerQuestion(c *gin.Context) {
	var req outfit.AnswerRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.outfitSvc.Answer(c.Request.Context(), profileFrom(c), c.Param("id"), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) ResetSession(c *gin.Context) {
	session, err := h.outfitSvc.Reset(c.Request.Context(), profileFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, session)
}
