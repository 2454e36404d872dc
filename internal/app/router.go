package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bricktickler.io/dossier/internal/api/handlers"
	"bricktickler.io/dossier/internal/api/middleware"
)

// newRouter wires the HTTP surface. Intake authenticates with the body
// MAC, not a session; everything under /exo/staging requires a manager
// token.
func newRouter(server *handlers.Server, signingKey []byte) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", handlers.SignatureHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	api := router.Group("/api/v1")

	api.GET("/health/live", server.GetLiveness)
	api.GET("/health/ready", server.GetReadiness)
	api.POST("/auth/login", server.Login)

	exo := api.Group("/exo")
	exo.POST("/intake", server.IntakeBlocks)

	staging := exo.Group("/staging", middleware.JWTAuth(signingKey), middleware.RequireManager())
	staging.GET("", server.ListStaging)
	staging.GET("/export", server.ExportApproved)
	staging.PATCH("/:id", server.ReviewBlock)
	staging.GET("/:id/events", server.ListBlockEvents)

	return router
}
