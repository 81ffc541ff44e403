package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/credentials"
	"github.com/01moynul/taptosell-creatives/internal/workflow"
)

const (
	CtxKeySessionID = "sessionID"
	CtxKeySession   = "session"
)

// TokenValidator resolves a bearer token to a session ID.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// SessionMiddleware loads the workflow session named by the bearer token.
func SessionMiddleware(tokens TokenValidator, sessions *workflow.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			Fail(c, apperr.UnauthorizedErr("Authorization header required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			Fail(c, apperr.UnauthorizedErr("Invalid token format (must be Bearer)"))
			return
		}

		// 2. --- Validate Token ---
		sessionID, err := tokens.ValidateToken(parts[1])
		if err != nil {
			Fail(c, apperr.UnauthorizedErr("Invalid or expired token"))
			return
		}

		// 3. --- Load Session ---
		session, err := sessions.Get(sessionID)
		if err != nil {
			Fail(c, err)
			return
		}

		c.Set(CtxKeySessionID, sessionID)
		c.Set(CtxKeySession, session)
		c.Next()
	}
}

// GetSession returns the session loaded by SessionMiddleware.
func GetSession(c *gin.Context) (*workflow.Session, bool) {
	v, ok := c.Get(CtxKeySession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*workflow.Session)
	return s, ok
}

// RequireUnlocked keeps generation triggers inert while the credential guard is locked.
func RequireUnlocked(guard *credentials.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !guard.Unlocked() {
			Fail(c, apperr.LockedErr("Selecione sua chave de API para continuar."))
			return
		}
		c.Next()
	}
}
