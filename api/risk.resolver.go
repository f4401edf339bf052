package api

import (
	"fmt"
	"marketdash/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
)

func (m ApiHandler) risk(c *gin.Context) {
	symbols, period, err := m.requestedSelection(c)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	view, err := m.DashboardService.GetRisk(c.Request.Context(), symbols, period)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, view)
}

type riskCsvRow struct {
	Symbol               string  `csv:"symbol"`
	CurrentPrice         float64 `csv:"current_price"`
	TotalReturn          float64 `csv:"total_return"`
	AnnualizedVolatility float64 `csv:"annualized_volatility"`
	SharpeRatio          float64 `csv:"sharpe_ratio"`
	MaxDrawdown          float64 `csv:"max_drawdown"`
	ValueAtRisk95        float64 `csv:"value_at_risk_95"`
}

func riskCsvRows(view *service.RiskView) []riskCsvRow {
	varBySymbol := map[string]float64{}
	for _, row := range view.VaR {
		varBySymbol[row.Symbol] = row.ValueAtRisk95
	}

	rows := []riskCsvRow{}
	for _, row := range view.Rows {
		rows = append(rows, riskCsvRow{
			Symbol:               row.Symbol,
			CurrentPrice:         row.CurrentPrice,
			TotalReturn:          row.TotalReturn,
			AnnualizedVolatility: row.AnnualizedVolatility,
			SharpeRatio:          row.SharpeRatio,
			MaxDrawdown:          row.MaxDrawdown,
			ValueAtRisk95:        varBySymbol[row.Symbol],
		})
	}
	return rows
}

func (m ApiHandler) exportRisk(c *gin.Context) {
	symbols, period, err := m.requestedSelection(c)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	view, err := m.DashboardService.GetRisk(c.Request.Context(), symbols, period)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	csv, err := gocsv.MarshalString(riskCsvRows(view))
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to marshal risk csv: %w", err), c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="risk_%s.csv"`, period))
	c.Data(200, "text/csv", []byte(csv))
}
