package bridge

import (
	"SquareBridge/pkg/logger"
	"SquareBridge/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		logger.CorrelationMiddleware(),
		metrics.GinMiddleware(livePath, readyPath, metricsPath),
		logger.BodyLogger(livePath, readyPath, metricsPath),
		gin.Recovery(),
	)
	return engine
}
