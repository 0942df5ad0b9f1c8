package stations

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"etik/internal/shared/constants"
	"etik/pkg/cache"
)

var (
	ErrInvalidStationID = errors.New("invalid station ID")

	stationIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)
)

type Service interface {
	GetPreferences(ctx context.Context, stationID string) (*Preferences, error)
	UpdatePreferences(ctx context.Context, stationID string, req UpdatePreferencesRequest) (*Preferences, error)
	ResetPreferences(ctx context.Context, stationID string) error
}

type service struct {
	cache cache.Service
	ttl   time.Duration
}

func NewService(cacheService cache.Service) Service {
	return &service{cache: cacheService, ttl: constants.TTL_STATION_PREFERENCES}
}

// ValidStationID reports whether id is usable as a station key
func ValidStationID(id string) bool {
	return stationIDPattern.MatchString(id)
}

func (s *service) GetPreferences(ctx context.Context, stationID string) (*Preferences, error) {
	if !ValidStationID(stationID) {
		return nil, ErrInvalidStationID
	}

	var prefs Preferences
	err := s.cache.Get(ctx, constants.BuildStationPreferencesKey(stationID), &prefs)
	if errors.Is(err, cache.ErrCacheMiss) {
		return &Preferences{StationID: stationID, Mode: "check-in", CategoryIDs: []int64{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load station preferences: %w", err)
	}
	return &prefs, nil
}

func (s *service) UpdatePreferences(ctx context.Context, stationID string, req UpdatePreferencesRequest) (*Preferences, error) {
	prefs, err := s.GetPreferences(ctx, stationID)
	if err != nil {
		return nil, err
	}

	if req.CameraDeviceID != nil {
		prefs.CameraDeviceID = *req.CameraDeviceID
	}
	if req.Mode != nil {
		prefs.Mode = *req.Mode
	}
	if req.EventID != nil {
		// Show and categories belong to the event
		if *req.EventID != prefs.EventID {
			prefs.ShowID = 0
			prefs.CategoryIDs = []int64{}
		}
		prefs.EventID = *req.EventID
	}
	if req.ShowID != nil {
		prefs.ShowID = *req.ShowID
	}
	if req.CategoryIDs != nil {
		prefs.CategoryIDs = req.CategoryIDs
	}
	prefs.UpdatedAt = time.Now()

	if err := s.cache.Set(ctx, constants.BuildStationPreferencesKey(stationID), prefs, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to save station preferences: %w", err)
	}
	return prefs, nil
}

func (s *service) ResetPreferences(ctx context.Context, stationID string) error {
	if !ValidStationID(stationID) {
		return ErrInvalidStationID
	}
	return s.cache.Delete(ctx, constants.BuildStationPreferencesKey(stationID))
}
