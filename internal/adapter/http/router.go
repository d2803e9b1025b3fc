package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coastlinevibe/eubiosis/internal/adapter/http/middleware"
	"github.com/coastlinevibe/eubiosis/internal/logging"
)

func NewRouter(ch *CheckoutHandler, oh *OrderHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/sessions", ch.CreateSession)
		v1.GET("/sessions/:id", ch.GetSession)
		v1.PUT("/sessions/:id/details", ch.UpdateDetails)
		v1.POST("/sessions/:id/advance", ch.Advance)
		v1.POST("/sessions/:id/back", ch.Back)
		v1.POST("/sessions/:id/payment", ch.UpdatePayment)
		v1.POST("/sessions/:id/submit", ch.Submit)
		v1.GET("/channels", ch.Channels)
		v1.GET("/orders/:id", oh.GetOrderByID)
	}

	return r
}
