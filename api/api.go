package api

import (
	"fmt"
	"pricesim/internal/logger"
	"pricesim/internal/repository"
	"pricesim/internal/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApiHandler struct {
	ForecastHandler service.ForecastHandler
	RunRepository   repository.SimulationRunRepository
	GptRepository   repository.GptRepository
	Logger          *zap.SugaredLogger
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddlware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to pricesim"})
	})
	router.POST("/forecast", m.forecast)
	router.POST("/explainForecast", m.explainForecast)
	router.GET("/runs/:id", m.getRun)
	router.GET("/runs", m.listRuns)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	fmt.Println(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	fmt.Println(err.Error())
	c.Abort()
	c.PureJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddlware(ctx *gin.Context) {
	log := m.Logger
	if log == nil {
		log = logger.New()
	}
	ctx.Set(logger.ContextKey, log)

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("request",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	)
}
