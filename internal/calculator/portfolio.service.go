package calculator

import (
	"marketdash/internal/domain"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// PortfolioService combines per-symbol series over their shared date
// index: equal-weight portfolio returns and the pairwise correlation
// matrix. Cross-series math on unaligned indexes is a defect, so all
// entry points align first.
type PortfolioService interface {
	ComputePortfolio(pricesBySymbol map[string]domain.PriceSeries) (domain.PortfolioSeries, domain.MetricSet)
	CorrelationMatrix(pricesBySymbol map[string]domain.PriceSeries) domain.CorrelationMatrix
}

func NewPortfolioService(metricsService MetricsService) PortfolioService {
	return portfolioServiceHandler{
		MetricsService: metricsService,
	}
}

type portfolioServiceHandler struct {
	MetricsService MetricsService
}

func (h portfolioServiceHandler) ComputePortfolio(pricesBySymbol map[string]domain.PriceSeries) (domain.PortfolioSeries, domain.MetricSet) {
	symbols, dates, returnsBySymbol := alignReturns(pricesBySymbol)

	portfolio := domain.PortfolioSeries{
		ReturnSeries: domain.ReturnSeries{
			Symbol: domain.PortfolioSymbol,
		},
		Constituents: symbols,
	}
	if len(symbols) == 0 {
		return portfolio, domain.MetricSet{}
	}

	for i, date := range dates {
		sum := 0.0
		for _, symbol := range symbols {
			sum += returnsBySymbol[symbol][i]
		}
		portfolio.Returns = append(portfolio.Returns, domain.Return{
			Date:  date,
			Value: sum / float64(len(symbols)),
		})
	}

	metrics := h.MetricsService.ComputeFromReturns(portfolio.ReturnSeries, 0)
	return portfolio, metrics
}

func (h portfolioServiceHandler) CorrelationMatrix(pricesBySymbol map[string]domain.PriceSeries) domain.CorrelationMatrix {
	symbols, _, returnsBySymbol := alignReturns(pricesBySymbol)

	matrix := domain.CorrelationMatrix{
		Symbols: symbols,
	}
	for i, a := range symbols {
		row := make([]float64, len(symbols))
		for j, b := range symbols {
			if i == j {
				row[j] = 1
				continue
			}
			corr, err := stats.Pearson(returnsBySymbol[a], returnsBySymbol[b])
			if err != nil {
				continue
			}
			row[j] = corr
		}
		matrix.Values = append(matrix.Values, row)
	}

	return matrix
}

// alignReturns derives daily returns per symbol and restricts them to
// the dates present in every non-empty series. Symbols whose series
// produced no returns at all are excluded rather than emptying the
// whole intersection.
func alignReturns(pricesBySymbol map[string]domain.PriceSeries) ([]string, []time.Time, map[string][]float64) {
	bySymbol := map[string]map[time.Time]float64{}
	symbols := []string{}
	for symbol, prices := range pricesBySymbol {
		returns := DailyReturns(prices)
		if returns.Len() == 0 {
			continue
		}
		byDate := make(map[time.Time]float64, returns.Len())
		for _, r := range returns.Returns {
			byDate[r.Date] = r.Value
		}
		bySymbol[symbol] = byDate
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	if len(symbols) == 0 {
		return nil, nil, nil
	}

	shared := []time.Time{}
	for date := range bySymbol[symbols[0]] {
		inAll := true
		for _, symbol := range symbols[1:] {
			if _, ok := bySymbol[symbol][date]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			shared = append(shared, date)
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		return shared[i].Before(shared[j])
	})

	aligned := make(map[string][]float64, len(symbols))
	for _, symbol := range symbols {
		values := make([]float64, 0, len(shared))
		for _, date := range shared {
			values = append(values, bySymbol[symbol][date])
		}
		aligned[symbol] = values
	}

	return symbols, shared, aligned
}
