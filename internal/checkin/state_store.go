package checkin

import (
	"context"
	"errors"
	"time"

	"etik/internal/shared/constants"
	"etik/internal/shared/viewstate"
	"etik/pkg/cache"
)

// StateStore keeps the page state of each station and mode
type StateStore interface {
	Put(ctx context.Context, stationID string, mode Mode, state viewstate.State[Result]) error
	Get(ctx context.Context, stationID string, mode Mode) (viewstate.State[Result], error)
}

type cacheStateStore struct {
	cache cache.Service
	ttl   time.Duration
}

func NewStateStore(cacheService cache.Service) StateStore {
	return &cacheStateStore{cache: cacheService, ttl: constants.TTL_STATION_STATE}
}

func (s *cacheStateStore) Put(ctx context.Context, stationID string, mode Mode, state viewstate.State[Result]) error {
	return s.cache.Set(ctx, constants.BuildStationStateKey(stationID, string(mode)), state, s.ttl)
}

// Get returns Idle for a station that has not scanned recently
func (s *cacheStateStore) Get(ctx context.Context, stationID string, mode Mode) (viewstate.State[Result], error) {
	var state viewstate.State[Result]
	err := s.cache.Get(ctx, constants.BuildStationStateKey(stationID, string(mode)), &state)
	if errors.Is(err, cache.ErrCacheMiss) {
		return viewstate.Idle[Result](), nil
	}
	if err != nil {
		return viewstate.State[Result]{}, err
	}
	return state, nil
}
