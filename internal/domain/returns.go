package domain

import "time"

// PortfolioSymbol names the synthetic equal-weight series in payloads.
const PortfolioSymbol = "PORTFOLIO"

// Return is one day's simple return: (close_t - close_{t-1}) / close_{t-1}.
type Return struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ReturnSeries holds daily returns derived from a PriceSeries,
// ascending by date. Its length is one less than the price series
// that produced it.
type ReturnSeries struct {
	Symbol  string   `json:"symbol"`
	Returns []Return `json:"returns"`
}

func (r ReturnSeries) Len() int {
	return len(r.Returns)
}

func (r ReturnSeries) Values() []float64 {
	out := make([]float64, 0, len(r.Returns))
	for _, ret := range r.Returns {
		out = append(out, ret.Value)
	}
	return out
}

// CumulativeGrowth returns the running product of (1 + r) over the
// series, one entry per return. An empty series yields nil.
func (r ReturnSeries) CumulativeGrowth() []float64 {
	if len(r.Returns) == 0 {
		return nil
	}
	out := make([]float64, 0, len(r.Returns))
	cum := 1.0
	for _, ret := range r.Returns {
		cum *= 1 + ret.Value
		out = append(out, cum)
	}
	return out
}

// MetricSet is the fixed set of summary statistics computed for a
// return series. Degenerate inputs (fewer than two prices, zero
// volatility) report zeros rather than errors so display logic can
// degrade gracefully.
type MetricSet struct {
	CurrentPrice         float64 `json:"currentPrice"`
	TotalReturn          float64 `json:"totalReturn"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
	SharpeRatio          float64 `json:"sharpeRatio"`
	MaxDrawdown          float64 `json:"maxDrawdown"`
	ValueAtRisk95        float64 `json:"valueAtRisk95"`
}

// PortfolioSeries is the equal-weight combination of per-symbol
// returns over their shared date index.
type PortfolioSeries struct {
	ReturnSeries
	// Constituents are the symbols that were averaged, sorted.
	Constituents []string `json:"constituents"`
}

// CorrelationMatrix holds pairwise Pearson correlations of aligned
// daily-return series. Values is row-major in Symbols order.
type CorrelationMatrix struct {
	Symbols []string    `json:"symbols"`
	Values  [][]float64 `json:"values"`
}
