package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/credentials"
	"github.com/01moynul/taptosell-creatives/internal/database"
	"github.com/01moynul/taptosell-creatives/internal/middleware"
	"github.com/01moynul/taptosell-creatives/internal/validation"
	"github.com/01moynul/taptosell-creatives/internal/workflow"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(sessionID string) (string, error)
}

// UsageReader reports generation usage; nil when no usage store is configured.
type UsageReader interface {
	Summary(ctx context.Context, since time.Time) ([]database.UsageSummary, error)
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Sessions *workflow.Registry
	Guard    *credentials.Guard
	Keys     *credentials.KeyStore
	Tokens   TokenIssuer
	Usage    UsageReader
	Logger   *slog.Logger

	// CredentialSelection enables key submission from the UI.
	CredentialSelection bool
}

// session returns the workflow session loaded by SessionMiddleware.
func (h *Handlers) session(c *gin.Context) (*workflow.Session, bool) {
	s, ok := middleware.GetSession(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Sessão ausente."))
		return nil, false
	}
	return s, true
}

// bindJSON binds the body into dst and reports field errors as one Invalid error.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, dst)))
		return false
	}
	return true
}
