package metrics

import (
	"fxconvert/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess         = "success"
	OutcomeNetworkError    = "network_error"
	OutcomeAPIError        = "api_error"
	OutcomeParseError      = "parse_error"
	OutcomeInvalidAmount   = "invalid_amount"
	OutcomeUnknownCurrency = "unknown_currency"
	OutcomeNotLoaded       = "not_loaded"
	OutcomeError           = "error"
)

// Metrics holds fetch and conversion counters.
type Metrics struct {
	FetchesTotal     *prometheus.CounterVec
	ConversionsTotal *prometheus.CounterVec
	RateTableSize    prometheus.Gauge
	LastFetchSuccess prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_rate_fetches_total",
				Help: "Rate table fetches by outcome",
			},
			[]string{"outcome"},
		),
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_conversions_total",
				Help: "Conversions by outcome",
			},
			[]string{"outcome"},
		),
		RateTableSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fx_rate_table_size",
			Help: "Number of currencies in the current rate table",
		}),
		LastFetchSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fx_rate_last_fetch_success_timestamp_seconds",
			Help: "Unix time of the last successful fetch",
		}),
	}
}

func (m *Metrics) ObserveFetch(outcome string, table *domain.RateTable) {
	m.FetchesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess && table != nil {
		m.RateTableSize.Set(float64(table.Len()))
		m.LastFetchSuccess.SetToCurrentTime()
	}
}

func (m *Metrics) ObserveConversion(outcome string) {
	m.ConversionsTotal.WithLabelValues(outcome).Inc()
}
