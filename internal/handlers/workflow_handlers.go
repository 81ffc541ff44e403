package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/middleware"
	"github.com/01moynul/taptosell-creatives/internal/models"
	"github.com/01moynul/taptosell-creatives/internal/workflow"
)

// ImportInput is the body of POST /v1/session/import.
type ImportInput struct {
	URL      string          `json:"url" binding:"required"`
	Language models.Language `json:"language" binding:"omitempty,oneof=Portuguese English Spanish"`
}

// MarginInput is the body of PUT /v1/session/margin.
type MarginInput struct {
	Margin *float64 `json:"margin" binding:"required,gte=-100"`
}

// rejectBusy answers 409 while the same kind is already running in this session.
func rejectBusy(c *gin.Context, s *workflow.Session, kind models.Kind) bool {
	if s.Store.Snapshot().Loading.Get(kind) {
		middleware.Fail(c, apperr.ConflictErr("Esta geração já está em andamento."))
		return true
	}
	return false
}

// respond writes the session view after an action, or the action's error.
func respond(c *gin.Context, s *workflow.Session, err error) {
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(s.ID, s.Store.Snapshot()))
}

// ImportProduct handles POST /v1/session/import
func (h *Handlers) ImportProduct(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	// 1. --- Parse Input ---
	var input ImportInput
	if !bindJSON(c, &input) {
		return
	}
	input.URL = strings.TrimSpace(input.URL)
	if input.Language == "" {
		input.Language = models.DefaultLanguage
	}

	// 2. --- Run Import ---
	if rejectBusy(c, s, models.KindImporting) {
		return
	}
	respond(c, s, s.Orchestrator.Import(c.Request.Context(), input.URL, input.Language))
}

// GenerateCreative handles POST /v1/session/creatives/:kind
// kind is one of video, images or copy.
func (h *Handlers) GenerateCreative(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	kind, err := models.ParseCreativeKind(c.Param("kind"))
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Tipo de criativo inválido.", map[string]string{"kind": c.Param("kind")}))
		return
	}

	if rejectBusy(c, s, kind) {
		return
	}
	respond(c, s, s.Orchestrator.GenerateCreative(c.Request.Context(), kind))
}

// Advance handles POST /v1/session/advance
func (h *Handlers) Advance(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respond(c, s, s.Orchestrator.Advance())
}

// GenerateSalesPage handles POST /v1/session/sales-page
func (h *Handlers) GenerateSalesPage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if rejectBusy(c, s, models.KindPage) {
		return
	}
	respond(c, s, s.Orchestrator.GenerateSalesPage(c.Request.Context()))
}

// SetMargin handles PUT /v1/session/margin
func (h *Handlers) SetMargin(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var input MarginInput
	if !bindJSON(c, &input) {
		return
	}
	respond(c, s, s.Orchestrator.SetMargin(*input.Margin))
}
