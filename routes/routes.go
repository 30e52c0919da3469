package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voyago/handlers"
)

// RegisterChatRoutes registers the dialogue endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/chat", hb.ChatHandler)
		api.POST("/reset/:threadID", hb.ResetThreadHandler)
		api.GET("/threads", hb.ListThreadsHandler)
	}
}

// RegisterDatasetRoutes registers dataset introspection endpoints.
func RegisterDatasetRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dataset")
	{
		api.GET("/stats", hb.DatasetStatsHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterDatasetRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
