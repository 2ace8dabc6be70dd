package rate

import (
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"math"
	"strconv"
	"strings"
)

type Converter struct {
	cache    adapters.CrossRateCache
	recorder adapters.Recorder
}

// NewConverter builds a converter. Both cache and recorder may be nil.
func NewConverter(cache adapters.CrossRateCache, recorder adapters.Recorder) *Converter {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Converter{cache: cache, recorder: recorder}
}

var plain = NewConverter(nil, nil)

// Convert computes amount * (table[to] / table[from]) without caching or metrics.
func Convert(req domain.ConversionRequest, table *domain.RateTable) (domain.ConversionResult, error) {
	return plain.convert(req, table)
}

// ParseAmount parses user input into a finite, non-negative amount.
func ParseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !validAmount(v) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, raw)
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return v, nil
}

func (c *Converter) Convert(req domain.ConversionRequest, table *domain.RateTable) (domain.ConversionResult, error) {
	res, err := c.convert(req, table)
	c.recorder.ObserveConversion(ConversionOutcome(err))
	return res, err
}

// ConvertInput converts raw form values: the amount string and the two selected codes.
func (c *Converter) ConvertInput(rawAmount, from, to string, table *domain.RateTable) (domain.ConversionResult, error) {
	res, err := c.convertInput(rawAmount, from, to, table)
	c.recorder.ObserveConversion(ConversionOutcome(err))
	return res, err
}

func (c *Converter) convertInput(rawAmount, from, to string, table *domain.RateTable) (domain.ConversionResult, error) {
	if table.Len() == 0 {
		return domain.ConversionResult{}, domain.ErrRatesNotLoaded
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	return c.convert(domain.ConversionRequest{Amount: amount, From: from, To: to}, table)
}

func (c *Converter) convert(req domain.ConversionRequest, table *domain.RateTable) (domain.ConversionResult, error) {
	if table.Len() == 0 {
		return domain.ConversionResult{}, domain.ErrRatesNotLoaded
	}
	if !validAmount(req.Amount) {
		return domain.ConversionResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, req.Amount)
	}

	from, to := NormalizeCode(req.From), NormalizeCode(req.To)
	if err := ValidateCodes(table, from, to); err != nil {
		return domain.ConversionResult{}, err
	}

	factor := c.factor(table, domain.RatePair{Base: from, Quote: to})
	value := req.Amount * factor
	if math.IsInf(value, 0) {
		return domain.ConversionResult{}, fmt.Errorf("%w: %v %s is out of range in %s", domain.ErrInvalidAmount, req.Amount, from, to)
	}
	return domain.ConversionResult{
		Amount: req.Amount,
		From:   from,
		To:     to,
		Value:  value,
	}, nil
}

// factor is the direct exchange factor for pair, derived through the base currency.
func (c *Converter) factor(table *domain.RateTable, pair domain.RatePair) float64 {
	if c.cache != nil {
		if f, ok := c.cache.Get(table.Version(), pair); ok {
			return f
		}
	}
	fromRate, _ := table.Rate(pair.Base)
	toRate, _ := table.Rate(pair.Quote)
	f := toRate / fromRate
	if c.cache != nil {
		c.cache.Set(table.Version(), pair, f)
	}
	return f
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
