package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) portfolio(c *gin.Context) {
	symbols, period, err := m.requestedSelection(c)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	view, err := m.DashboardService.GetPortfolio(c.Request.Context(), symbols, period)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, view)
}
