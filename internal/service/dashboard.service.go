package service

import (
	"context"
	"fmt"
	"marketdash/internal/calculator"
	"marketdash/internal/domain"
	"sort"

	"github.com/shopspring/decimal"
)

// view payloads consumed by the presentation layer. The server does
// no rendering beyond serializing these; any charting frontend can
// plot them as-is.

type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type VolumePoint struct {
	Date   string `json:"date"`
	Volume int64  `json:"volume"`
}

type NamedSeries struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type SymbolCard struct {
	Symbol  string           `json:"symbol"`
	HasData bool             `json:"hasData"`
	Metrics domain.MetricSet `json:"metrics"`
}

type OverviewView struct {
	Cards      []SymbolCard  `json:"cards"`
	Normalized []NamedSeries `json:"normalized"`
}

type HistogramBin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

type PerformanceView struct {
	Symbol    string         `json:"symbol"`
	Closes    []Point        `json:"closes"`
	Volumes   []VolumePoint  `json:"volumes"`
	Histogram []HistogramBin `json:"histogram"`
}

type PortfolioView struct {
	// Cumulative holds one growth path per constituent plus the
	// equal-weight portfolio, scaled x100 like the source charts.
	Cumulative  []NamedSeries            `json:"cumulative"`
	Metrics     domain.MetricSet         `json:"metrics"`
	Correlation domain.CorrelationMatrix `json:"correlation"`
	// Message is set when the view degraded (fewer than two symbols
	// with data) instead of failing the render pass.
	Message string `json:"message,omitempty"`
}

type RiskRow struct {
	Symbol               string  `json:"symbol"`
	CurrentPrice         float64 `json:"currentPrice"`
	TotalReturn          float64 `json:"totalReturn"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
	SharpeRatio          float64 `json:"sharpeRatio"`
	MaxDrawdown          float64 `json:"maxDrawdown"`
}

type ScatterPoint struct {
	Symbol      string  `json:"symbol"`
	TotalReturn float64 `json:"totalReturn"`
	Volatility  float64 `json:"volatility"`
}

type VaRRow struct {
	Symbol         string  `json:"symbol"`
	ValueAtRisk95  float64 `json:"valueAtRisk95"`
	Interpretation string  `json:"interpretation"`
}

type RiskView struct {
	Rows    []RiskRow      `json:"rows"`
	Scatter []ScatterPoint `json:"scatter"`
	VaR     []VaRRow       `json:"var"`
}

type Dashboard struct {
	Symbols     []string                   `json:"symbols"`
	Period      domain.Period              `json:"period"`
	Overview    OverviewView               `json:"overview"`
	Performance map[string]PerformanceView `json:"performance"`
	Portfolio   PortfolioView              `json:"portfolio"`
	Risk        RiskView                   `json:"risk"`
}

// DashboardService runs the fetch-compute-assemble pass behind every
// view. One fetch per (symbols, period) selection; everything else is
// derived from that single aligned result.
type DashboardService interface {
	GetDashboard(ctx context.Context, symbols []string, period domain.Period) (*Dashboard, error)
	GetOverview(ctx context.Context, symbols []string, period domain.Period) (*OverviewView, error)
	GetPerformance(ctx context.Context, symbols []string, period domain.Period, symbol string) (*PerformanceView, error)
	GetPortfolio(ctx context.Context, symbols []string, period domain.Period) (*PortfolioView, error)
	GetRisk(ctx context.Context, symbols []string, period domain.Period) (*RiskView, error)
}

func NewDashboardService(
	priceService PriceService,
	metricsService calculator.MetricsService,
	portfolioService calculator.PortfolioService,
) DashboardService {
	return dashboardServiceHandler{
		PriceService:     priceService,
		MetricsService:   metricsService,
		PortfolioService: portfolioService,
	}
}

type dashboardServiceHandler struct {
	PriceService     PriceService
	MetricsService   calculator.MetricsService
	PortfolioService calculator.PortfolioService
}

const dateLayout = "2006-01-02"

const histogramBins = 50

func (h dashboardServiceHandler) GetDashboard(ctx context.Context, symbols []string, period domain.Period) (*Dashboard, error) {
	pricesBySymbol, err := h.PriceService.Fetch(ctx, symbols, period)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Symbols:     sortedSymbols(pricesBySymbol),
		Period:      period,
		Overview:    h.buildOverview(pricesBySymbol),
		Performance: map[string]PerformanceView{},
		Portfolio:   h.buildPortfolio(pricesBySymbol),
		Risk:        h.buildRisk(pricesBySymbol),
	}
	for symbol, prices := range pricesBySymbol {
		dashboard.Performance[symbol] = buildPerformance(prices)
	}

	return dashboard, nil
}

func (h dashboardServiceHandler) GetOverview(ctx context.Context, symbols []string, period domain.Period) (*OverviewView, error) {
	pricesBySymbol, err := h.PriceService.Fetch(ctx, symbols, period)
	if err != nil {
		return nil, err
	}
	view := h.buildOverview(pricesBySymbol)
	return &view, nil
}

func (h dashboardServiceHandler) GetPerformance(ctx context.Context, symbols []string, period domain.Period, symbol string) (*PerformanceView, error) {
	pricesBySymbol, err := h.PriceService.Fetch(ctx, symbols, period)
	if err != nil {
		return nil, err
	}
	prices, ok := pricesBySymbol[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %s not in requested set", symbol)
	}
	view := buildPerformance(prices)
	return &view, nil
}

func (h dashboardServiceHandler) GetPortfolio(ctx context.Context, symbols []string, period domain.Period) (*PortfolioView, error) {
	pricesBySymbol, err := h.PriceService.Fetch(ctx, symbols, period)
	if err != nil {
		return nil, err
	}
	view := h.buildPortfolio(pricesBySymbol)
	return &view, nil
}

func (h dashboardServiceHandler) GetRisk(ctx context.Context, symbols []string, period domain.Period) (*RiskView, error) {
	pricesBySymbol, err := h.PriceService.Fetch(ctx, symbols, period)
	if err != nil {
		return nil, err
	}
	view := h.buildRisk(pricesBySymbol)
	return &view, nil
}

func (h dashboardServiceHandler) buildOverview(pricesBySymbol map[string]domain.PriceSeries) OverviewView {
	view := OverviewView{}
	hundred := decimal.NewFromInt(100)

	for _, symbol := range sortedSymbols(pricesBySymbol) {
		prices := pricesBySymbol[symbol]
		_, metrics := h.MetricsService.Compute(prices)
		view.Cards = append(view.Cards, SymbolCard{
			Symbol:  symbol,
			HasData: !prices.Empty(),
			Metrics: metrics,
		})

		if prices.Empty() {
			continue
		}
		first := prices.Bars[0].Close
		if first.IsZero() {
			continue
		}
		normalized := NamedSeries{Name: symbol}
		for _, bar := range prices.Bars {
			normalized.Points = append(normalized.Points, Point{
				Date:  bar.Date.Format(dateLayout),
				Value: bar.Close.Div(first).Mul(hundred).InexactFloat64(),
			})
		}
		view.Normalized = append(view.Normalized, normalized)
	}

	return view
}

func buildPerformance(prices domain.PriceSeries) PerformanceView {
	view := PerformanceView{
		Symbol: prices.Symbol,
	}
	for _, bar := range prices.Bars {
		view.Closes = append(view.Closes, Point{
			Date:  bar.Date.Format(dateLayout),
			Value: bar.Close.InexactFloat64(),
		})
		view.Volumes = append(view.Volumes, VolumePoint{
			Date:   bar.Date.Format(dateLayout),
			Volume: bar.Volume,
		})
	}
	view.Histogram = returnHistogram(calculator.DailyReturns(prices))
	return view
}

// returnHistogram bins daily returns (as percentages) into
// equal-width buckets over [min, max].
func returnHistogram(returns domain.ReturnSeries) []HistogramBin {
	values := returns.Values()
	if len(values) == 0 {
		return nil
	}

	min, max := values[0]*100, values[0]*100
	for _, v := range values[1:] {
		pct := v * 100
		if pct < min {
			min = pct
		}
		if pct > max {
			max = pct
		}
	}

	bins := make([]HistogramBin, histogramBins)
	width := (max - min) / histogramBins
	if width == 0 {
		return []HistogramBin{{Start: min, End: max, Count: len(values)}}
	}
	for i := range bins {
		bins[i].Start = min + float64(i)*width
		bins[i].End = min + float64(i+1)*width
	}
	for _, v := range values {
		idx := int((v*100 - min) / width)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		bins[idx].Count++
	}
	return bins
}

func (h dashboardServiceHandler) buildPortfolio(pricesBySymbol map[string]domain.PriceSeries) PortfolioView {
	portfolio, metrics := h.PortfolioService.ComputePortfolio(pricesBySymbol)

	view := PortfolioView{
		Metrics:     metrics,
		Correlation: h.PortfolioService.CorrelationMatrix(pricesBySymbol),
	}
	if len(portfolio.Constituents) < 2 {
		view.Message = "add at least 2 symbols with data to see portfolio analysis"
		return view
	}

	for _, symbol := range portfolio.Constituents {
		returns := calculator.DailyReturns(pricesBySymbol[symbol])
		view.Cumulative = append(view.Cumulative, cumulativeSeries(returns))
	}
	view.Cumulative = append(view.Cumulative, cumulativeSeries(portfolio.ReturnSeries))

	return view
}

func cumulativeSeries(returns domain.ReturnSeries) NamedSeries {
	out := NamedSeries{Name: returns.Symbol}
	growth := returns.CumulativeGrowth()
	for i, g := range growth {
		out.Points = append(out.Points, Point{
			Date:  returns.Returns[i].Date.Format(dateLayout),
			Value: g * 100,
		})
	}
	return out
}

func (h dashboardServiceHandler) buildRisk(pricesBySymbol map[string]domain.PriceSeries) RiskView {
	view := RiskView{}
	for _, symbol := range sortedSymbols(pricesBySymbol) {
		prices := pricesBySymbol[symbol]
		if prices.Empty() {
			continue
		}
		_, metrics := h.MetricsService.Compute(prices)
		view.Rows = append(view.Rows, RiskRow{
			Symbol:               symbol,
			CurrentPrice:         metrics.CurrentPrice,
			TotalReturn:          metrics.TotalReturn,
			AnnualizedVolatility: metrics.AnnualizedVolatility,
			SharpeRatio:          metrics.SharpeRatio,
			MaxDrawdown:          metrics.MaxDrawdown,
		})
		view.Scatter = append(view.Scatter, ScatterPoint{
			Symbol:      symbol,
			TotalReturn: metrics.TotalReturn,
			Volatility:  metrics.AnnualizedVolatility,
		})
		view.VaR = append(view.VaR, VaRRow{
			Symbol:        symbol,
			ValueAtRisk95: metrics.ValueAtRisk95,
			Interpretation: fmt.Sprintf(
				"5%% chance of losing more than %.2f%% in a day",
				metrics.ValueAtRisk95*100,
			),
		})
	}
	return view
}

func sortedSymbols(pricesBySymbol map[string]domain.PriceSeries) []string {
	out := make([]string, 0, len(pricesBySymbol))
	for symbol := range pricesBySymbol {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}
