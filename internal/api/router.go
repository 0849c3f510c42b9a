package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webstore/checkout-orchestrator/internal/handlers"
	"github.com/webstore/checkout-orchestrator/internal/interfaces"
	"github.com/webstore/checkout-orchestrator/internal/service"
	"github.com/webstore/checkout-orchestrator/internal/telemetry"
)

func NewRouter(
	orchestrator *service.Orchestrator,
	repo interfaces.OrderRepository,
	sessions interfaces.SessionStore,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.TracingMiddleware())

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "checkout-orchestrator"})
	})

	// Checkout routes
	checkoutHandler := handlers.NewCheckoutHandler(orchestrator, sessions)
	orderHandler := handlers.NewOrderHandler(repo, sessions)
	r.POST("/checkout/action", checkoutHandler.CheckoutAction)
	r.GET("/payment/:id", orderHandler.GetPaymentComplete)

	return r
}
