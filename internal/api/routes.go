package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, metrics http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		voc := v1.Group("/voc", handler.RequireApproval)
		{
			voc.GET("", handler.GetRecords)                        // GET /api/v1/voc
			voc.GET("/trend", handler.GetTrend)                    // GET /api/v1/voc/trend
			voc.GET("/distribution", handler.GetDistribution)      // GET /api/v1/voc/distribution
			voc.GET("/summary/yesterday", handler.GetYesterdaySummary) // GET /api/v1/voc/summary/yesterday
			voc.GET("/search", handler.Search)                     // GET /api/v1/voc/search
			voc.POST("/reload", handler.Reload)                    // POST /api/v1/voc/reload
		}

		v1.GET("/access/check", handler.CheckAccess) // GET /api/v1/access/check

		accessGroup := v1.Group("/access/requests")
		{
			accessGroup.POST("", handler.RequestAccess)                // POST /api/v1/access/requests
			accessGroup.GET("", handler.ListAccessRequests)            // GET /api/v1/access/requests
			accessGroup.POST("/:email/approve", handler.ApproveAccess) // POST /api/v1/access/requests/:email/approve
			accessGroup.POST("/:email/revoke", handler.RevokeAccess)   // POST /api/v1/access/requests/:email/revoke
		}
	}
}
