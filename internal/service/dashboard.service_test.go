package service

import (
	"context"
	"marketdash/internal/calculator"
	"marketdash/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fixedPriceService struct {
	pricesBySymbol map[string]domain.PriceSeries
}

func (m fixedPriceService) Fetch(ctx context.Context, symbols []string, period domain.Period) (map[string]domain.PriceSeries, error) {
	return m.pricesBySymbol, nil
}

func newDashboardServiceForTests(pricesBySymbol map[string]domain.PriceSeries) DashboardService {
	metricsService := calculator.NewMetricsService(0.02, 252)
	return NewDashboardService(
		fixedPriceService{pricesBySymbol: pricesBySymbol},
		metricsService,
		calculator.NewPortfolioService(metricsService),
	)
}

func Test_GetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles all four views", func(t *testing.T) {
		h := newDashboardServiceForTests(map[string]domain.PriceSeries{
			"AAPL": testSeries("AAPL", 100, 110, 121),
			"MSFT": testSeries("MSFT", 100, 90, 99),
		})

		dashboard, err := h.GetDashboard(ctx, []string{"AAPL", "MSFT"}, domain.PeriodOneYear)
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff([]string{"AAPL", "MSFT"}, dashboard.Symbols))
		require.Equal(t, domain.PeriodOneYear, dashboard.Period)
		require.Len(t, dashboard.Overview.Cards, 2)
		require.Len(t, dashboard.Performance, 2)
		require.Len(t, dashboard.Risk.Rows, 2)
		require.Empty(t, dashboard.Portfolio.Message)
	})

	t.Run("normalized comparison starts at 100", func(t *testing.T) {
		h := newDashboardServiceForTests(map[string]domain.PriceSeries{
			"AAPL": testSeries("AAPL", 50, 55, 60),
		})

		view, err := h.GetOverview(ctx, []string{"AAPL"}, domain.PeriodOneYear)
		require.NoError(t, err)

		require.Len(t, view.Normalized, 1)
		points := view.Normalized[0].Points
		require.InDelta(t, 100, points[0].Value, 1e-9)
		require.InDelta(t, 110, points[1].Value, 1e-9)
		require.InDelta(t, 120, points[2].Value, 1e-9)
	})

	t.Run("empty symbols render blank cards, not errors", func(t *testing.T) {
		h := newDashboardServiceForTests(map[string]domain.PriceSeries{
			"AAPL":        testSeries("AAPL", 100, 110, 121),
			"ZZZZINVALID": {Symbol: "ZZZZINVALID"},
		})

		view, err := h.GetOverview(ctx, []string{"AAPL", "ZZZZINVALID"}, domain.PeriodOneYear)
		require.NoError(t, err)

		require.Len(t, view.Cards, 2)
		require.False(t, view.Cards[1].HasData)
		require.Equal(t, domain.MetricSet{}, view.Cards[1].Metrics)
		// only symbols with data contribute comparison lines
		require.Len(t, view.Normalized, 1)
	})

	t.Run("single symbol portfolio degrades with message", func(t *testing.T) {
		h := newDashboardServiceForTests(map[string]domain.PriceSeries{
			"AAPL": testSeries("AAPL", 100, 110, 121),
		})

		view, err := h.GetPortfolio(ctx, []string{"AAPL"}, domain.PeriodOneYear)
		require.NoError(t, err)
		require.NotEmpty(t, view.Message)
		require.Empty(t, view.Cumulative)
	})

	t.Run("portfolio view includes constituents plus portfolio line", func(t *testing.T) {
		h := newDashboardServiceForTests(map[string]domain.PriceSeries{
			"AAPL": testSeries("AAPL", 100, 110, 121),
			"MSFT": testSeries("MSFT", 100, 90, 99),
		})

		view, err := h.GetPortfolio(ctx, []string{"AAPL", "MSFT"}, domain.PeriodOneYear)
		require.NoError(t, err)

		names := []string{}
		for _, s := range view.Cumulative {
			names = append(names, s.Name)
		}
		require.Equal(t, "", cmp.Diff([]string{"AAPL", "MSFT", domain.PortfolioSymbol}, names))
		require.Len(t, view.Correlation.Symbols, 2)
	})

	t.Run("performance view for a symbol outside the set errors", func(t *testing.T) {
		h := newDashboardServiceForTests(map[string]domain.PriceSeries{
			"AAPL": testSeries("AAPL", 100, 110),
		})

		_, err := h.GetPerformance(ctx, []string{"AAPL"}, domain.PeriodOneYear, "MSFT")
		require.Error(t, err)
	})

	t.Run("risk view skips symbols without data", func(t *testing.T) {
		h := newDashboardServiceForTests(map[string]domain.PriceSeries{
			"AAPL":        testSeries("AAPL", 100, 110, 121),
			"ZZZZINVALID": {Symbol: "ZZZZINVALID"},
		})

		view, err := h.GetRisk(ctx, []string{"AAPL", "ZZZZINVALID"}, domain.PeriodOneYear)
		require.NoError(t, err)
		require.Len(t, view.Rows, 1)
		require.Len(t, view.VaR, 1)
		require.Contains(t, view.VaR[0].Interpretation, "5% chance of losing more than")
	})
}

func Test_returnHistogram(t *testing.T) {
	t.Run("empty returns yield no bins", func(t *testing.T) {
		require.Nil(t, returnHistogram(domain.ReturnSeries{}))
	})

	t.Run("constant returns collapse to one bin", func(t *testing.T) {
		returns := calculator.DailyReturns(testSeries("X", 100, 110, 121))
		bins := returnHistogram(returns)
		require.Len(t, bins, 1)
		require.Equal(t, 2, bins[0].Count)
	})

	t.Run("counts cover every observation", func(t *testing.T) {
		returns := calculator.DailyReturns(testSeries("X", 100, 101, 99, 104, 102, 108, 103))
		bins := returnHistogram(returns)
		require.Len(t, bins, histogramBins)

		total := 0
		for _, b := range bins {
			total += b.Count
		}
		require.Equal(t, returns.Len(), total)
	})
}
