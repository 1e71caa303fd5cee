package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nba-prop-checker/internal/auth"
	"nba-prop-checker/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// ApiHandler serves the prop checker HTTP API.
type ApiHandler struct {
	Players PlayerFinder
	Games   GameProvider
	Issuer  *auth.Issuer
	Log     *zap.SugaredLogger
}

// NewRouter builds the gin engine with all routes and middleware.
func (h ApiHandler) NewRouter(corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(h.requestMiddleware)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := router.Group("/api/v1")
	v1.GET("/stats", h.listStats)
	v1.GET("/getPlayer/:name", h.getPlayer)
	v1.GET("/getGames/:id", h.getGames)

	private := router.Group("/", auth.Middleware(h.Issuer, h.Log))
	private.GET("/api/v1/evaluate/:id", h.evaluate)
	private.GET("/dashboard", h.dashboard)

	return router
}

// requestMiddleware tags each request with an id and a scoped logger,
// and logs it once it completes.
func (h ApiHandler) requestMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	log := h.Log.With("request_id", requestID)
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))

	start := time.Now()
	c.Next()

	log.Infow("request",
		"method", c.Request.Method,
		"route", c.FullPath(),
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
	)
}
