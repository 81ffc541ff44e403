package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/middleware"
)

// SelectKeyInput is the body of POST /v1/credentials/select.
type SelectKeyInput struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// CredentialStatus handles GET /v1/credentials/status
func (h *Handlers) CredentialStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":     h.Guard.State(),
		"selection": h.CredentialSelection,
	})
}

// SelectCredential handles POST /v1/credentials/select
// The submitted key becomes active and the guard unlocks optimistically.
func (h *Handlers) SelectCredential(c *gin.Context) {
	if !h.CredentialSelection {
		middleware.Fail(c, apperr.ConflictErr("A seleção de chave de API não está habilitada."))
		return
	}

	// 1. --- Parse Input ---
	var input SelectKeyInput
	if !bindJSON(c, &input) {
		return
	}

	// 2. --- Submit & Select ---
	h.Keys.Submit(input.APIKey)
	if err := h.Guard.Select(c.Request.Context()); err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": h.Guard.State()})
}
