package adapters

import (
	"context"
	"fxconvert/internal/domain"

	"github.com/google/uuid"
)

type RateClient interface {
	GetLatestRates(ctx context.Context) (*domain.RateTable, error)
}

type CrossRateCache interface {
	Get(version uuid.UUID, pair domain.RatePair) (float64, bool)
	Set(version uuid.UUID, pair domain.RatePair, factor float64)
}

// Recorder receives outcome labels for fetches and conversions.
type Recorder interface {
	ObserveFetch(outcome string, table *domain.RateTable)
	ObserveConversion(outcome string)
}
