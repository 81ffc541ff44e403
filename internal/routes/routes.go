package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/taptosell-creatives/internal/handlers"
	"github.com/01moynul/taptosell-creatives/internal/middleware"
)

// CORSMiddleware allows the single configured frontend origin to call the API.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Allow ONLY the configured frontend
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		// 2. Allow the headers we actually use ("Authorization" carries the session token)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		// 3. Preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, tokens middleware.TokenValidator, corsOrigin string, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	// CORS must run first so preflights never reach the session check.
	router.Use(CORSMiddleware(corsOrigin))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.ErrorHandler(logger))

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Session & Credential Routes (Public) ---
		v1.POST("/sessions", h.CreateSession)
		v1.GET("/credentials/status", h.CredentialStatus)
		v1.POST("/credentials/select", h.SelectCredential)
		v1.GET("/usage", h.GetUsage)

		// --- Workflow Routes (Session token required) ---
		session := v1.Group("/session")
		session.Use(middleware.SessionMiddleware(tokens, h.Sessions))
		{
			session.GET("", h.GetSession)
			session.POST("/advance", h.Advance)
			session.PUT("/margin", h.SetMargin)
			session.POST("/publish", h.Publish)

			// Generation triggers stay inert while no usable key is selected.
			generate := session.Group("")
			generate.Use(middleware.RequireUnlocked(h.Guard))
			{
				generate.POST("/import", h.ImportProduct)
				generate.POST("/creatives/:kind", h.GenerateCreative)
				generate.POST("/sales-page", h.GenerateSalesPage)
			}
		}
	}

	return router
}
