package domain

import (
	"fmt"
	"strings"
	"time"
)

// Period is a fixed lookback window selectable from the dashboard.
type Period string

const (
	PeriodOneMonth    Period = "1M"
	PeriodThreeMonths Period = "3M"
	PeriodSixMonths   Period = "6M"
	PeriodOneYear     Period = "1Y"
	PeriodTwoYears    Period = "2Y"
	PeriodFiveYears   Period = "5Y"
	PeriodMax         Period = "MAX"
)

var periodDays = map[Period]int{
	PeriodOneMonth:    30,
	PeriodThreeMonths: 90,
	PeriodSixMonths:   180,
	PeriodOneYear:     365,
	PeriodTwoYears:    730,
	PeriodFiveYears:   1825,
}

// ParsePeriod parses a case-insensitive period string. An empty
// input falls back to the given default.
func ParsePeriod(s string, fallback Period) (Period, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := periodDays[p]; ok || p == PeriodMax {
		return p, nil
	}
	return "", fmt.Errorf("invalid period %q", s)
}

// Start returns the beginning of the lookback window ending at end.
// MAX reaches back to the start of daily Yahoo coverage rather than
// an unbounded range.
func (p Period) Start(end time.Time) time.Time {
	days, ok := periodDays[p]
	if !ok {
		return time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return end.AddDate(0, 0, -days)
}

func (p Period) String() string {
	return string(p)
}
