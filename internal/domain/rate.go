package domain

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// RateTable is an immutable snapshot of multipliers relative to a single base currency.
type RateTable struct {
	version uuid.UUID
	base    string
	rates   map[string]float64
	codes   []string
}

// NewRateTable validates rates and builds a table. The base currency is added with 1.0 when missing.
func NewRateTable(base string, rates map[string]float64) (*RateTable, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no rates in response", ErrParse)
	}

	m := maps.Clone(rates)
	for code, v := range m {
		if code == "" {
			return nil, fmt.Errorf("%w: empty currency code", ErrParse)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil, fmt.Errorf("%w: rate for %s is not positive", ErrParse, code)
		}
	}
	if v, ok := m[base]; !ok {
		m[base] = 1
	} else if v != 1 {
		return nil, fmt.Errorf("%w: base %s has rate %v", ErrParse, base, v)
	}

	codes := slices.Collect(maps.Keys(m))
	slices.Sort(codes)

	return &RateTable{
		version: uuid.New(),
		base:    base,
		rates:   m,
		codes:   codes,
	}, nil
}

func (t *RateTable) Version() uuid.UUID { return t.version }

func (t *RateTable) Base() string { return t.base }

func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rates)
}

// Rate returns units of code per one unit of the base currency.
func (t *RateTable) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.rates[code]
	return v, ok
}

func (t *RateTable) Has(code string) bool {
	_, ok := t.Rate(code)
	return ok
}

// Codes returns currency codes in lexicographic order.
func (t *RateTable) Codes() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.codes)
}

// Rates returns a copy of the underlying map.
func (t *RateTable) Rates() map[string]float64 {
	if t == nil {
		return nil
	}
	return maps.Clone(t.rates)
}

// FetchResult is the outcome of one fetch: either a table with its retrieval time or an error.
type FetchResult struct {
	Table     *RateTable
	FetchedAt time.Time
	Err       error
}

func (r FetchResult) OK() bool { return r.Err == nil && r.Table != nil }

type RatePair struct {
	Base  string
	Quote string
}

func (p RatePair) Reversed() RatePair {
	return RatePair{
		Base:  p.Quote,
		Quote: p.Base,
	}
}

type ConversionRequest struct {
	Amount float64
	From   string
	To     string
}

func (r ConversionRequest) Pair() RatePair {
	return RatePair{Base: r.From, Quote: r.To}
}

type ConversionResult struct {
	Amount float64
	From   string
	To     string
	Value  float64
}
