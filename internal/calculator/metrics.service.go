package calculator

import (
	"marketdash/internal/domain"
	"math"

	"github.com/montanaflynn/stats"
)

// MetricsService derives daily returns and summary risk statistics
// from a single price series.
type MetricsService interface {
	Compute(prices domain.PriceSeries) (domain.ReturnSeries, domain.MetricSet)
	ComputeFromReturns(returns domain.ReturnSeries, currentPrice float64) domain.MetricSet
}

func NewMetricsService(riskFreeRate float64, tradingDaysPerYear int) MetricsService {
	return metricsServiceHandler{
		RiskFreeRate:       riskFreeRate,
		TradingDaysPerYear: tradingDaysPerYear,
	}
}

type metricsServiceHandler struct {
	RiskFreeRate       float64
	TradingDaysPerYear int
}

// DailyReturns converts a price series into consecutive simple
// returns. Fewer than two bars yields an empty series.
func DailyReturns(prices domain.PriceSeries) domain.ReturnSeries {
	out := domain.ReturnSeries{
		Symbol: prices.Symbol,
	}
	for i := 1; i < len(prices.Bars); i++ {
		prev := prices.Bars[i-1].Close.InexactFloat64()
		cur := prices.Bars[i].Close.InexactFloat64()
		if prev == 0 {
			continue
		}
		out.Returns = append(out.Returns, domain.Return{
			Date:  prices.Bars[i].Date,
			Value: (cur - prev) / prev,
		})
	}
	return out
}

func (h metricsServiceHandler) Compute(prices domain.PriceSeries) (domain.ReturnSeries, domain.MetricSet) {
	returns := DailyReturns(prices)

	metrics := h.ComputeFromReturns(returns, prices.LastClose())

	// total return straight off the price series where possible; the
	// cumulative-product version agrees within float tolerance but
	// this form matches the published definition exactly
	if closes := prices.Closes(); len(closes) >= 2 && closes[0] != 0 {
		metrics.TotalReturn = (closes[len(closes)-1] - closes[0]) / closes[0]
	}

	return returns, metrics
}

// ComputeFromReturns calculates the metric set for an already-derived
// return series. Degenerate inputs report zeros, a documented
// convention so callers can render partial dashboards without
// special-casing.
func (h metricsServiceHandler) ComputeFromReturns(returns domain.ReturnSeries, currentPrice float64) domain.MetricSet {
	metrics := domain.MetricSet{
		CurrentPrice: currentPrice,
	}
	values := returns.Values()
	if len(values) == 0 {
		return metrics
	}

	growth := returns.CumulativeGrowth()
	metrics.TotalReturn = growth[len(growth)-1] - 1
	metrics.MaxDrawdown = maxDrawdown(growth)
	metrics.ValueAtRisk95 = valueAtRisk95(values)

	if len(values) < 2 {
		// sample stddev undefined for a single observation
		return metrics
	}

	stdev, err := stats.StandardDeviationSample(values)
	if err != nil || stdev == 0 {
		return metrics
	}
	annualized := stdev * math.Sqrt(float64(h.TradingDaysPerYear))
	metrics.AnnualizedVolatility = annualized

	mean, err := stats.Mean(values)
	if err != nil {
		return metrics
	}
	metrics.SharpeRatio = (mean*float64(h.TradingDaysPerYear) - h.RiskFreeRate) / annualized

	return metrics
}

// maxDrawdown is the worst decline from a running peak of the
// cumulative growth path. The path implicitly starts at 1 (no
// returns applied yet), so an immediate drop counts as a drawdown.
// Always <= 0; exactly 0 for a non-decreasing path.
func maxDrawdown(growth []float64) float64 {
	worst := 0.0
	runningMax := 1.0
	for _, g := range growth {
		if g > runningMax {
			runningMax = g
		}
		if runningMax > 0 {
			if dd := g/runningMax - 1; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// valueAtRisk95 is the 5th percentile of the empirical daily-return
// distribution, reported as a positive loss magnitude. A
// distribution whose 5th percentile is a gain reports 0.
func valueAtRisk95(values []float64) float64 {
	p5, err := stats.Percentile(values, 5)
	if err != nil {
		// Percentile rejects tiny samples; fall back to the worst observation
		min, minErr := stats.Min(values)
		if minErr != nil {
			return 0
		}
		p5 = min
	}
	if p5 >= 0 {
		return 0
	}
	return -p5
}
