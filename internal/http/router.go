// Package apphttp assembles the JSON API the screens consume.
package apphttp

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/handlers"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/middleware"
)

// Deps carries the screen handlers the router mounts.
type Deps struct {
	Tracking  *handlers.TrackingHandler
	Addresses *handlers.AddressesHandler
	History   *handlers.HistoryHandler
	Dashboard *handlers.DashboardHandler
}

func NewRouter(l *slog.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(l))
	r.Use(middleware.Recovery(l))
	r.Use(middleware.ErrorHandler(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/track", d.Tracking.Active)
		api.GET("/track/alerts", d.Tracking.Alerts)
		api.POST("/track/orders", d.Tracking.Watch)

		api.GET("/addresses", d.Addresses.List)
		api.PUT("/addresses", d.Addresses.Update)

		api.GET("/history", d.History.List)

		api.GET("/partner/dashboard", d.Dashboard.Page)
		api.POST("/partner/orders/:id/accept", d.Dashboard.Accept)
		api.POST("/partner/orders/:id/delivered", d.Dashboard.Delivered)
	}

	return r
}
