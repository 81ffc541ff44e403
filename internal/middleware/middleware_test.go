package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/credentials"
	"github.com/01moynul/taptosell-creatives/internal/workflow"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newEngine(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(discard), Recovery(discard), ErrorHandler(discard))
	r.Use(extra...)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestErrorHandler_RendersAppError(t *testing.T) {
	r := newEngine()
	r.GET("/invalid", func(c *gin.Context) {
		Fail(c, apperr.InvalidErr("Dados inválidos.", map[string]string{"url": "Este campo é obrigatório."}))
	})
	r.GET("/generation", func(c *gin.Context) {
		Fail(c, apperr.E(apperr.Generation, "gerar imagem", errors.New("boom")))
	})
	r.GET("/foreign", func(c *gin.Context) {
		Fail(c, errors.New("db down"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invalid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Dados inválidos.", body["error"])
	assert.Equal(t, "invalid", body["kind"])
	assert.Equal(t, map[string]any{"url": "Este campo é obrigatório."}, body["fields"])
	assert.NotEmpty(t, body["request_id"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generation", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Falha ao gerar imagem. Verifique o console para mais detalhes.", decode(t, w)["error"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/foreign", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestRecovery(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal", decode(t, w)["kind"])
}

type fakeTokens map[string]string

func (f fakeTokens) ValidateToken(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid token")
}

func TestSessionMiddleware(t *testing.T) {
	reg := workflow.NewRegistry(nil, nil, discard)
	s := reg.Create()
	tokens := fakeTokens{"good": s.ID, "stale": "no-such-session"}

	r := newEngine(SessionMiddleware(tokens, reg))
	r.GET("/", func(c *gin.Context) {
		got, ok := GetSession(c)
		require.True(t, ok)
		c.String(http.StatusOK, got.ID)
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"unknown session", "Bearer stale", http.StatusNotFound},
		{"ok", "Bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, s.ID, w.Body.String())
			}
		})
	}
}

type noKeyHost struct{}

func (noKeyHost) HasSelectedKey(ctx context.Context) (bool, error) { return false, nil }
func (noKeyHost) OpenSelectKey(ctx context.Context) error           { return nil }

func TestRequireUnlocked(t *testing.T) {
	guard := credentials.NewGuard(context.Background(), noKeyHost{}, discard)
	require.False(t, guard.Unlocked())

	r := newEngine(RequireUnlocked(guard))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Equal(t, "locked", decode(t, w)["kind"])

	require.NoError(t, guard.Select(context.Background()))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAccessLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, accessLevel("/v1/session", http.StatusOK))
	assert.Equal(t, slog.LevelInfo, accessLevel("/v1/session/import", http.StatusOK))
	assert.Equal(t, slog.LevelWarn, accessLevel("/v1/session", http.StatusLocked))
	assert.Equal(t, slog.LevelError, accessLevel("/v1/session/creatives/:kind", http.StatusBadGateway))
}

func TestLogger_RecordsRouteAndErrorKind(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(RequestID(), Logger(l), ErrorHandler(discard))
	r.POST("/v1/session/creatives/:kind", func(c *gin.Context) {
		Fail(c, apperr.ConflictErr("busy"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/session/creatives/video", nil))
	require.Equal(t, http.StatusConflict, w.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "/v1/session/creatives/:kind", line["route"])
	assert.Equal(t, "video", line["creative"])
	assert.Equal(t, "conflict", line["error_kind"])
	assert.Equal(t, float64(http.StatusConflict), line["status"])
}
