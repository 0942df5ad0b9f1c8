package analytics

import (
	"context"
	"fmt"
	"time"

	"etik/internal/shared/constants"
	"etik/pkg/cache"
)

// hourlyWindow bounds the hourly series of the dashboard
const hourlyWindow = 24 * time.Hour

type Service interface {
	GetEventScanAnalytics(ctx context.Context, eventID int64) (*EventScanAnalytics, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	now          func() time.Time
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cacheService: cacheService, now: time.Now}
}

func (s *service) GetEventScanAnalytics(ctx context.Context, eventID int64) (*EventScanAnalytics, error) {
	var result EventScanAnalytics
	err := s.cacheService.GetOrSet(ctx, constants.BuildScanAnalyticsKey(eventID), constants.TTL_SCAN_ANALYTICS, func() (interface{}, error) {
		return s.build(ctx, eventID)
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) build(ctx context.Context, eventID int64) (*EventScanAnalytics, error) {
	overview, err := s.repo.GetScanOverview(ctx, eventID)
	if err != nil {
		return nil, err
	}

	stations, err := s.repo.GetStationActivity(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if stations == nil {
		stations = []StationActivity{}
	}

	now := s.now()
	hourly, err := s.repo.GetHourlyScans(ctx, eventID, now.Add(-hourlyWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to build scan analytics: %w", err)
	}
	if hourly == nil {
		hourly = []HourlyScans{}
	}

	return &EventScanAnalytics{
		EventID:     eventID,
		Overview:    *overview,
		Stations:    stations,
		Hourly:      hourly,
		GeneratedAt: now,
	}, nil
}
