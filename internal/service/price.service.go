package service

import (
	"context"
	"fmt"
	"marketdash/internal/domain"
	"marketdash/internal/logger"
	"marketdash/internal/repository"
	"sort"
	"strings"
	"sync"
	"time"
)

// PriceService retrieves daily price history for a set of symbols
// over a lookback period, memoizing results for the cache TTL. A
// failure or miss for one symbol degrades to an empty series for that
// symbol only.
type PriceService interface {
	Fetch(ctx context.Context, symbols []string, period domain.Period) (map[string]domain.PriceSeries, error)
}

func NewPriceService(marketDataRepository repository.MarketDataRepository, ttl time.Duration) PriceService {
	return &priceServiceHandler{
		MarketDataRepository: marketDataRepository,
		Cache:                newPriceCache(ttl),
	}
}

type priceServiceHandler struct {
	MarketDataRepository repository.MarketDataRepository
	Cache                *priceCache
}

// ParseSymbols normalizes free-text comma-separated ticker input:
// trimmed, uppercased, de-duplicated, empties dropped.
func ParseSymbols(input string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, raw := range strings.Split(input, ",") {
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		out = append(out, symbol)
	}
	return out
}

func (h *priceServiceHandler) Fetch(ctx context.Context, symbols []string, period domain.Period) (map[string]domain.PriceSeries, error) {
	cleaned := []string{}
	seen := map[string]bool{}
	for _, s := range symbols {
		symbol := strings.ToUpper(strings.TrimSpace(s))
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		cleaned = append(cleaned, symbol)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("no valid ticker symbols given")
	}

	key := cacheKey(cleaned, period)
	if cached, ok := h.Cache.get(key); ok {
		return cached, nil
	}

	log := logger.FromContext(ctx)
	end := time.Now().UTC()
	start := period.Start(end)

	out := map[string]domain.PriceSeries{}
	for _, symbol := range cleaned {
		series, err := h.MarketDataRepository.GetDailyBars(ctx, symbol, start, end)
		if err != nil {
			// provider miss or unreachable - either way this symbol
			// renders blank and the rest of the request proceeds
			log.Warnf("failed to fetch %s: %v", symbol, err)
			out[symbol] = domain.PriceSeries{Symbol: symbol}
			continue
		}
		out[symbol] = series
	}

	h.Cache.put(key, out)
	return out, nil
}

type cacheEntry struct {
	series    map[string]domain.PriceSeries
	expiresAt time.Time
}

// priceCache memoizes fetch results per (sorted symbols, period) key.
// Entries are immutable once written, so concurrent writers for the
// same key race harmlessly to equivalent values.
type priceCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newPriceCache(ttl time.Duration) *priceCache {
	return &priceCache{
		entries: map[string]cacheEntry{},
		ttl:     ttl,
	}
}

func cacheKey(symbols []string, period domain.Period) string {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)
	return strings.Join(sorted, ",") + "|" + period.String()
}

func (c *priceCache) get(key string) (map[string]domain.PriceSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.series, true
}

func (c *priceCache) put(key string, series map[string]domain.PriceSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		series:    series,
		expiresAt: time.Now().Add(c.ttl),
	}
}
