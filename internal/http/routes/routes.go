package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imagebatch/internal/http/handlers"
	"imagebatch/internal/http/middleware"
)

type Router struct {
	imageHandler *handlers.ImageHandler
	logger       *zap.Logger
}

func NewRouter(
	imageHandler *handlers.ImageHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		imageHandler: imageHandler,
		logger:       logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	router.POST("/convert", r.imageHandler.Convert)
	router.POST("/convert-zip", r.imageHandler.ConvertZip)
	router.POST("/resize", r.imageHandler.Resize)
	router.POST("/resize-zip", r.imageHandler.ResizeZip)

	router.GET("/health", r.imageHandler.HealthCheck)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Image batch converter is running",
		})
	})

	return router
}
