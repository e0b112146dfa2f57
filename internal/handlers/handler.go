package handlers

import (
	"time"

	"home_dashboard/internal/logger"
	"home_dashboard/internal/metrics"
	"home_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services    *service.Service
	log         *logger.Logger
	metrics     *metrics.Metrics
	authEnabled bool
	wsInterval  time.Duration
}

// Option customises a Handler.
type Option func(*Handler)

// WithMetrics exposes m on /metrics and counts websocket clients.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithAuth puts the mutation and history routes behind bearer tokens.
func WithAuth(enabled bool) Option {
	return func(h *Handler) { h.authEnabled = enabled }
}

// WithPushInterval sets the default periodic resend of the websocket stream.
func WithPushInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.wsInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, wsInterval: defaultInterval}
	for _, o := range opts {
		o(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(parsePageTemplate())

	router.GET("/", h.page)
	router.StaticFS("/static", staticFS())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	api.GET("/view", h.getView)

	protected := api.Group("")
	if h.authEnabled {
		protected.Use(h.operatorMiddleware)
	}
	{
		protected.POST("/commands", h.submitCommand)
		protected.POST("/confirmation", h.confirmSave)
		protected.POST("/message/close", h.closeMessage)
		protected.POST("/sections/toggle", h.toggleSection)
		protected.POST("/poll", h.pollNow)
		protected.GET("/history", h.getHistory)
	}
}
