package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"crockpot_twin/internal/logger"
	"crockpot_twin/internal/service"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler
}

// NewHandler constructs a new HTTP handler with dependencies. The
// metrics handler may be nil to disable the /metrics endpoint.
func NewHandler(services *service.Service, log *logger.Logger, metrics http.Handler) *Handler {
	return &Handler{services: services, log: log, metrics: metrics}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// WebSocket status stream (HTTP upgrade), same port.
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
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerApplianceRoutes(api)
		h.registerScheduleRoutes(api)
		h.registerHistoryRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerApplianceRoutes(api *gin.RouterGroup) {
	appliance := api.Group("/appliance")
	{
		// Body example: {"state":"HIGH"}
		appliance.POST("/state", h.setState)
		appliance.GET("/status", h.getStatus)
		appliance.POST("/fault", h.injectFault)
		appliance.PUT("/config", h.updateConfig)
	}
}

func (h *Handler) registerScheduleRoutes(api *gin.RouterGroup) {
	schedules := api.Group("/schedules")
	{
		schedules.GET("", h.listSchedules)
		schedules.PUT("", h.saveSchedule)
		schedules.POST("/stop", h.stopSchedule)
		schedules.GET("/:name", h.getSchedule)
		schedules.DELETE("/:name", h.deleteSchedule)
		schedules.POST("/:name/start", h.startSchedule)
	}
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	history := api.Group("/history")
	{
		history.GET("", h.getHistory)
		history.GET("/stats", h.getHistoryStats)
		history.GET("/export", h.exportHistory)
		history.POST("/import", h.importHistory)
		history.POST("/sample", h.forceSample)
		history.DELETE("", h.clearHistory)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
