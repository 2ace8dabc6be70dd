package rate

import (
	"context"
	"errors"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultFetchTimeout = 10 * time.Second

// Provider fetches a fresh rate table on demand.
type Provider struct {
	client   adapters.RateClient
	recorder adapters.Recorder
	timeout  time.Duration
	now      func() time.Time
}

// Fetch performs one request. Failures are carried in the result, never returned past it.
func (p *Provider) Fetch(ctx context.Context) domain.FetchResult {
	execID := uuid.NewString()
	log := logrus.WithField("exec_id", execID)
	log.Debug("Fetching exchange rates")

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	table, err := p.client.GetLatestRates(reqCtx)
	if err == nil && table == nil {
		err = domain.ErrParse
	}
	if err != nil {
		outcome := FetchOutcome(err)
		log.WithError(err).WithField("outcome", outcome).Warn("Exchange rates fetch failed")
		p.recorder.ObserveFetch(outcome, nil)
		return domain.FetchResult{Err: err}
	}

	p.recorder.ObserveFetch(metrics.OutcomeSuccess, table)
	log.WithField("currencies", table.Len()).Info("✅ Exchange rates loaded")
	return domain.FetchResult{Table: table, FetchedAt: p.now()}
}

// FetchOutcome maps a fetch error onto a metrics label.
func FetchOutcome(err error) string {
	var apiErr *domain.APIError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPIError
	case errors.Is(err, domain.ErrNetwork):
		return metrics.OutcomeNetworkError
	case errors.Is(err, domain.ErrParse):
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeError
	}
}

// ConversionOutcome maps a conversion error onto a metrics label.
func ConversionOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrRatesNotLoaded):
		return metrics.OutcomeNotLoaded
	case errors.Is(err, domain.ErrInvalidAmount):
		return metrics.OutcomeInvalidAmount
	case errors.Is(err, domain.ErrUnknownCurrency):
		return metrics.OutcomeUnknownCurrency
	default:
		return metrics.OutcomeError
	}
}

type noopRecorder struct{}

func (noopRecorder) ObserveFetch(string, *domain.RateTable) {}
func (noopRecorder) ObserveConversion(string)               {}

func NewProvider(client adapters.RateClient, recorder adapters.Recorder, timeout time.Duration) *Provider {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Provider{client: client, recorder: recorder, timeout: timeout, now: time.Now}
}
