package repository

import (
	"context"
	"fmt"
	"marketdash/internal/domain"
	"marketdash/internal/util"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// MarketDataRepository retrieves daily OHLCV history from the
// external market-data provider.
type MarketDataRepository interface {
	GetDailyBars(ctx context.Context, symbol string, start, end time.Time) (domain.PriceSeries, error)
}

func NewMarketDataRepository() MarketDataRepository {
	return yahooRepositoryHandler{}
}

type yahooRepositoryHandler struct{}

func (h yahooRepositoryHandler) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) (domain.PriceSeries, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	params.Context = &ctx
	iter := chart.Get(params)

	series := domain.PriceSeries{
		Symbol: symbol,
	}
	for iter.Next() {
		b := iter.Bar()
		date := util.TruncateToDay(time.Unix(int64(b.Timestamp), 0))
		// providers occasionally repeat the final session bar
		if n := len(series.Bars); n > 0 && series.Bars[n-1].Date.Equal(date) {
			series.Bars[n-1] = domain.Bar{
				Date:   date,
				Open:   b.Open,
				High:   b.High,
				Low:    b.Low,
				Close:  b.AdjClose,
				Volume: int64(b.Volume),
			}
			continue
		}
		series.Bars = append(series.Bars, domain.Bar{
			Date:   date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.AdjClose,
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return domain.PriceSeries{Symbol: symbol}, fmt.Errorf("failed to get bars for %s: %w", symbol, err)
	}

	return series, nil
}
