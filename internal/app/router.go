package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/nutslove/otel-instrumentation-demo/internal/config"
	"github.com/nutslove/otel-instrumentation-demo/internal/orders"
)

// NewRouter builds the gin engine with recovery, tracing and CORS middleware
// and attaches the order routes.
func NewRouter(handler *orders.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(config.ServiceName))

	// The demo front end is served from arbitrary origins
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	handler.RegisterRoutes(router)
	return router
}
