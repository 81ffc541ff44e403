package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/middleware"
)

// GetUsage handles GET /v1/usage?window=24h
func (h *Handlers) GetUsage(c *gin.Context) {
	if h.Usage == nil {
		middleware.Fail(c, apperr.NotFoundErr("Registro de uso não configurado."))
		return
	}

	window := 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			middleware.Fail(c, apperr.InvalidErr("Janela inválida.", map[string]string{"window": raw}))
			return
		}
		window = d
	}

	summary, err := h.Usage.Summary(c.Request.Context(), time.Now().Add(-window))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": window.String(), "operations": summary})
}
