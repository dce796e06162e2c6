package routes

import (
	"net/http"

	"whitepaper-portal-api/controllers"
	"whitepaper-portal-api/middleware"
	"whitepaper-portal-api/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	monitor.RegisterMonitorRoutes(router)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/health", controllers.Health)

			// Landing content
			public.GET("/site", controllers.GetSiteContent)
			public.GET("/site/system-prompt", controllers.GetSystemPrompt)

			// Showcase gallery and public proposal view
			public.GET("/showcase", controllers.GetShowcase)
			public.GET("/proposals/:id", controllers.GetPublicProposal)

			// Live section checklist for the submit and edit forms
			public.POST("/sections/check", controllers.CheckSections)
		}

		// Protected routes (require a signed-in user)
		protected := v1.Group("")
		protected.Use(middleware.RequireAuth())
		{
			protected.POST("/proposals", controllers.CreateProposal)

			mine := protected.Group("/my-proposals")
			{
				mine.GET("", controllers.GetMyProposals)
				mine.GET("/:id/edit", controllers.GetProposalForEdit)
				mine.PUT("/:id", controllers.UpdateProposal)
				mine.DELETE("/:id", controllers.DeleteProposal)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Endpoint not found",
		})
	})
}
