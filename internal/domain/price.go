package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one trading day of OHLCV data for a symbol.
type Bar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// PriceSeries holds one symbol's daily bars, ascending by date,
// no duplicate dates. Treated as immutable once fetched.
type PriceSeries struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

func (p PriceSeries) Len() int {
	return len(p.Bars)
}

func (p PriceSeries) Empty() bool {
	return len(p.Bars) == 0
}

// Closes returns the close prices as floats, in date order.
func (p PriceSeries) Closes() []float64 {
	out := make([]float64, 0, len(p.Bars))
	for _, b := range p.Bars {
		out = append(out, b.Close.InexactFloat64())
	}
	return out
}

// LastClose returns the most recent close, or zero for an empty series.
func (p PriceSeries) LastClose() float64 {
	if len(p.Bars) == 0 {
		return 0
	}
	return p.Bars[len(p.Bars)-1].Close.InexactFloat64()
}
