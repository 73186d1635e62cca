// internal/router/router.go
package router

import (
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/Mahekpandey/DyslexiaDetection/internal/handlers"
	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
	"github.com/Mahekpandey/DyslexiaDetection/internal/session"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, manager *session.Manager, passages *models.PassageLibrary) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Session creation is rate limited; a misbehaving client must not
	// be able to spawn unbounded analyzer pipelines.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	sessionHandler := handlers.NewSessionHandler(log, manager, passages)

	api := router.Group("/api")
	{
		api.GET("/passages", sessionHandler.Passages)

		api.POST("/sessions", limiter, sessionHandler.Create)
		sessionRoutes := api.Group("/sessions/:id")
		{
			sessionRoutes.GET("/status", sessionHandler.Status)
			sessionRoutes.GET("/stream", sessionHandler.Stream)
			sessionRoutes.GET("/report", sessionHandler.Report)
			sessionRoutes.POST("/calibration/start", sessionHandler.CalibrationStart)
			sessionRoutes.POST("/calibration/next", sessionHandler.CalibrationNext)
			sessionRoutes.POST("/reading/start", sessionHandler.ReadingStart)
			sessionRoutes.POST("/end", sessionHandler.End)
		}
	}

	return router
}
