package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) performance(c *gin.Context) {
	symbols, period, err := m.requestedSelection(c)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	inSet := false
	for _, s := range symbols {
		if s == symbol {
			inSet = true
			break
		}
	}
	if !inSet {
		symbols = append(symbols, symbol)
	}

	view, err := m.DashboardService.GetPerformance(c.Request.Context(), symbols, period, symbol)
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return
	}

	c.JSON(200, view)
}
