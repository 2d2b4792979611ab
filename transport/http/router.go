package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/aio/service"
)

// Deps are the services the router exposes
type Deps struct {
	Gate        *service.Gate
	AuthService *service.AuthService
	AreaService *service.AreaService
	Gating      GateOptions

	// Metrics is mounted at /metrics when set
	Metrics http.Handler
}

// SetupRouter sets up the Gin router
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	gate := AuthMiddleware(deps.Gate, deps.Gating)
	gated := router.Group("")
	gated.Use(gate)

	authHandlers := NewAuthHandlers(deps.AuthService)
	auth := gated.Group("/auth")
	{
		auth.GET("/me", authHandlers.Me)
		auth.POST("/logout", RequireAuthentication(), authHandlers.Logout)
	}

	areaHandlers := NewAreaHandlers(deps.AreaService)
	areas := gated.Group("/api/areas")
	{
		areas.GET("", areaHandlers.List)
		areas.GET("/page", areaHandlers.Page)
		areas.GET("/code/:code", areaHandlers.GetByCode)
		areas.GET("/:id", areaHandlers.Get)

		writes := areas.Group("", RequireAuthentication())
		writes.POST("", areaHandlers.Create)
		writes.PUT("/:id", areaHandlers.Update)
		writes.DELETE("/:id", areaHandlers.Delete)
	}

	// Preflights for routes that only register other methods still need to
	// reach the gate.
	gated.OPTIONS("/*path", func(c *gin.Context) {})

	// Unknown paths are gated too, so only authenticated callers see a 404.
	// Unmatched methods land here as well since HandleMethodNotAllowed is off.
	router.NoRoute(gate, func(c *gin.Context) {
		c.JSON(http.StatusNotFound, failure(CodeNotFound, "Route not found"))
	})

	return router
}
