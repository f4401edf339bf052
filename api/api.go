package api

import (
	"context"
	"fmt"
	"marketdash/internal/config"
	"marketdash/internal/domain"
	"marketdash/internal/logger"
	"marketdash/internal/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	DashboardService service.DashboardService
	Config           *config.Config
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to marketdash"})
	})
	router.POST("/dashboard", m.dashboard)
	router.GET("/overview", m.overview)
	router.GET("/performance/:symbol", m.performance)
	router.GET("/portfolio", m.portfolio)
	router.GET("/risk", m.risk)
	router.GET("/risk/export", m.exportRisk)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	log := logger.New().With(
		"requestID", uuid.NewString(),
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	ctx.Request = ctx.Request.WithContext(
		context.WithValue(ctx.Request.Context(), logger.ContextKey, log),
	)

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("handled request",
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}

// requestedSelection pulls the (symbols, period) selection out of
// query params, applying configured defaults when absent.
func (m ApiHandler) requestedSelection(c *gin.Context) ([]string, domain.Period, error) {
	symbols := service.ParseSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		symbols = m.Config.Dashboard.DefaultSymbols
	}

	fallback, err := domain.ParsePeriod(m.Config.Dashboard.DefaultPeriod, domain.PeriodOneYear)
	if err != nil {
		return nil, "", fmt.Errorf("invalid default period in config: %w", err)
	}
	period, err := domain.ParsePeriod(c.Query("period"), fallback)
	if err != nil {
		return nil, "", err
	}

	return symbols, period, nil
}
