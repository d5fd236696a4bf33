package handlers

import (
	_ "motorheat/docs" // registers the swagger spec
	"motorheat/internal/logger"
	"motorheat/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Curve streaming over WebSocket, same port
	router.GET("/ws/simulations/:id", h.wsAuthMiddleware, h.wsStreamCurve)

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
		h.registerSimulationRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerSimulationRoutes(api *gin.RouterGroup) {
	sims := api.Group("/simulations")
	{
		// Body example: {"class":"F","rated_power_kw":3,"efficiency_percent":82,...}
		sims.POST("", h.createSimulation)
		sims.GET("", h.listSimulations)
		sims.GET("/:id", h.getSimulation)
		sims.GET("/:id/curves/:mode", h.getCurve)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
