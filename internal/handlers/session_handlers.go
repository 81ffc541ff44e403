package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/middleware"
	"github.com/01moynul/taptosell-creatives/internal/models"
	"github.com/01moynul/taptosell-creatives/internal/workflow"
)

// SessionView is the JSON shape of a session snapshot.
type SessionView struct {
	ID           string              `json:"id"`
	Step         models.Step         `json:"step"`
	Steps        []models.StepInfo   `json:"steps"`
	Language     models.Language     `json:"language"`
	Margin       float64             `json:"margin"`
	SellingPrice float64             `json:"sellingPrice"`
	Product      *models.Product     `json:"product"`
	Handle       string              `json:"handle,omitempty"`
	Creatives    *models.AdCreative  `json:"creatives"`
	SalesPage    *models.SalesPage   `json:"salesPage"`
	Loading      models.LoadingState `json:"loading"`
}

func newSessionView(id string, s workflow.Snapshot) SessionView {
	v := SessionView{
		ID:           id,
		Step:         s.Step,
		Steps:        models.Steps,
		Language:     s.Language,
		Margin:       s.Margin,
		SellingPrice: s.SellingPrice(),
		Product:      s.Product,
		Creatives:    s.Creatives,
		SalesPage:    s.SalesPage,
		Loading:      s.Loading,
	}
	if s.Product != nil {
		v.Handle = slug.Make(s.Product.Title)
	}
	return v
}

// CreateSession handles POST /v1/sessions
// It starts a fresh workflow and returns the token that addresses it.
func (h *Handlers) CreateSession(c *gin.Context) {
	// 1. --- Create Session ---
	s := h.Sessions.Create()

	// 2. --- Sign Token ---
	token, err := h.Tokens.GenerateToken(s.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	// 3. --- Respond ---
	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"session": newSessionView(s.ID, s.Store.Snapshot()),
	})
}

// GetSession handles GET /v1/session
// The UI polls it to render the current step and loading flags.
func (h *Handlers) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionView(s.ID, s.Store.Snapshot()))
}

// Publish handles POST /v1/session/publish
// Publishing to a store is not wired yet; the handle shows what would be used.
func (h *Handlers) Publish(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	snap := s.Store.Snapshot()
	if snap.Product == nil {
		middleware.Fail(c, apperr.ConflictErr("Importe um produto primeiro."))
		return
	}

	c.JSON(http.StatusNotImplemented, gin.H{
		"error":  "Publicação na loja ainda não está disponível.",
		"handle": slug.Make(snap.Product.Title),
	})
}
