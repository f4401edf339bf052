package service

import (
	"context"
	"fmt"
	"marketdash/internal/domain"
	mock_repository "marketdash/internal/repository/mocks"
	"marketdash/internal/util"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testSeries(symbol string, closes ...float64) domain.PriceSeries {
	series := domain.PriceSeries{Symbol: symbol}
	for i, c := range closes {
		series.Bars = append(series.Bars, domain.Bar{
			Date:  util.NewDate(2024, 1, 1).AddDate(0, 0, i),
			Close: decimal.NewFromFloat(c),
		})
	}
	return series
}

func Test_ParseSymbols(t *testing.T) {
	t.Run("trims, uppercases, dedupes", func(t *testing.T) {
		require.Equal(t, "", cmp.Diff(
			[]string{"AAPL", "MSFT", "GOOGL"},
			ParseSymbols(" aapl, MSFT ,googl,aapl,, "),
		))
	})

	t.Run("empty input yields no symbols", func(t *testing.T) {
		require.Empty(t, ParseSymbols("  , ,"))
	})
}

func Test_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("second fetch within ttl hits the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		h := NewPriceService(marketData, time.Hour)

		aapl := testSeries("AAPL", 100, 110, 121)
		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
			Return(aapl, nil).
			Times(1)

		first, err := h.Fetch(ctx, []string{"AAPL"}, domain.PeriodOneYear)
		require.NoError(t, err)

		second, err := h.Fetch(ctx, []string{"AAPL"}, domain.PeriodOneYear)
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(
			first,
			second,
			cmp.Comparer(func(d1, d2 decimal.Decimal) bool {
				return d1.Equal(d2)
			}),
		))
		require.Equal(t, 3, second["AAPL"].Len())
	})

	t.Run("expired entries are refetched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		h := NewPriceService(marketData, -time.Second)

		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
			Return(testSeries("AAPL", 100, 110), nil).
			Times(2)

		_, err := h.Fetch(ctx, []string{"AAPL"}, domain.PeriodOneMonth)
		require.NoError(t, err)
		_, err = h.Fetch(ctx, []string{"AAPL"}, domain.PeriodOneMonth)
		require.NoError(t, err)
	})

	t.Run("cache key ignores symbol order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		h := NewPriceService(marketData, time.Hour)

		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
			Return(testSeries("AAPL", 100, 110), nil).
			Times(1)
		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "MSFT", gomock.Any(), gomock.Any()).
			Return(testSeries("MSFT", 200, 210), nil).
			Times(1)

		_, err := h.Fetch(ctx, []string{"MSFT", "AAPL"}, domain.PeriodOneYear)
		require.NoError(t, err)
		_, err = h.Fetch(ctx, []string{"AAPL", "MSFT"}, domain.PeriodOneYear)
		require.NoError(t, err)
	})

	t.Run("unknown ticker degrades to empty series", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		h := NewPriceService(marketData, time.Hour)

		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
			Return(testSeries("AAPL", 100, 110, 121), nil)
		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "ZZZZINVALID", gomock.Any(), gomock.Any()).
			Return(domain.PriceSeries{Symbol: "ZZZZINVALID"}, fmt.Errorf("no data found"))

		out, err := h.Fetch(ctx, []string{"AAPL", "ZZZZINVALID"}, domain.PeriodOneYear)
		require.NoError(t, err)

		require.Equal(t, 3, out["AAPL"].Len())
		require.True(t, out["ZZZZINVALID"].Empty())
	})

	t.Run("one provider failure does not abort the rest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		h := NewPriceService(marketData, time.Hour)

		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
			Return(domain.PriceSeries{Symbol: "AAPL"}, fmt.Errorf("connection refused"))
		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "MSFT", gomock.Any(), gomock.Any()).
			Return(testSeries("MSFT", 300, 310), nil)

		out, err := h.Fetch(ctx, []string{"AAPL", "MSFT"}, domain.PeriodSixMonths)
		require.NoError(t, err)
		require.True(t, out["AAPL"].Empty())
		require.Equal(t, 2, out["MSFT"].Len())
	})

	t.Run("no valid symbols is an input error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		h := NewPriceService(marketData, time.Hour)

		_, err := h.Fetch(ctx, []string{"", "  "}, domain.PeriodOneYear)
		require.Error(t, err)
	})

	t.Run("symbols are normalized before fetching", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		h := NewPriceService(marketData, time.Hour)

		marketData.EXPECT().
			GetDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
			Return(testSeries("AAPL", 100, 110), nil).
			Times(1)

		out, err := h.Fetch(ctx, []string{" aapl "}, domain.PeriodOneYear)
		require.NoError(t, err)
		require.Equal(t, 2, out["AAPL"].Len())
	})
}

func Test_cacheKey(t *testing.T) {
	require.Equal(t, "AAPL,MSFT|1Y", cacheKey([]string{"MSFT", "AAPL"}, domain.PeriodOneYear))
	require.Equal(t, "AAPL|MAX", cacheKey([]string{"AAPL"}, domain.PeriodMax))
}
