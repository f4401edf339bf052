package api

import (
	"fmt"
	"marketdash/internal/domain"
	"marketdash/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardRequest struct {
	// Symbols is free-text comma-separated ticker input, e.g.
	// "AAPL, MSFT, GOOGL".
	Symbols string `json:"symbols"`
	Period  string `json:"period"`
}

func (m ApiHandler) dashboard(c *gin.Context) {
	var requestBody DashboardRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	symbols := service.ParseSymbols(requestBody.Symbols)
	if len(symbols) == 0 {
		returnErrorJsonCode(fmt.Errorf("please enter at least one stock ticker"), c, 400)
		return
	}

	fallback, err := domain.ParsePeriod(m.Config.Dashboard.DefaultPeriod, domain.PeriodOneYear)
	if err != nil {
		returnErrorJson(fmt.Errorf("invalid default period in config: %w", err), c)
		return
	}
	period, err := domain.ParsePeriod(requestBody.Period, fallback)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	dashboard, err := m.DashboardService.GetDashboard(c.Request.Context(), symbols, period)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, dashboard)
}
