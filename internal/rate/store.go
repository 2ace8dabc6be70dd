package rate

import (
	"fxconvert/internal/domain"
	"sync/atomic"
)

// Store holds the latest successful fetch for readers outside the console loop.
type Store struct {
	latest atomic.Pointer[domain.FetchResult]
}

func NewStore() *Store { return &Store{} }

// Publish replaces the snapshot. Failed results are ignored so readers keep the last good table.
func (s *Store) Publish(res domain.FetchResult) {
	if !res.OK() {
		return
	}
	s.latest.Store(&res)
}

func (s *Store) Latest() (domain.FetchResult, bool) {
	res := s.latest.Load()
	if res == nil {
		return domain.FetchResult{}, false
	}
	return *res, true
}
