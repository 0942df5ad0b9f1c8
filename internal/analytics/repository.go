package analytics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository defines the scan analytics queries
type Repository interface {
	GetScanOverview(ctx context.Context, eventID int64) (*ScanOverview, error)
	GetStationActivity(ctx context.Context, eventID int64) ([]StationActivity, error)
	GetHourlyScans(ctx context.Context, eventID int64, since time.Time) ([]HourlyScans, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetScanOverview(ctx context.Context, eventID int64) (*ScanOverview, error) {
	var overview ScanOverview
	query := `
		SELECT
			COUNT(*) FILTER (WHERE action = 'lookup') AS lookups,
			COUNT(*) FILTER (WHERE action = 'submit' AND outcome = 'ok') AS submissions,
			COALESCE(SUM(ticket_count) FILTER (WHERE action = 'submit' AND outcome = 'ok' AND mode = 'check-in'), 0) AS tickets_checked_in,
			COALESCE(SUM(ticket_count) FILTER (WHERE action = 'submit' AND outcome = 'ok' AND mode = 'check-out'), 0) AS tickets_checked_out,
			COUNT(*) FILTER (WHERE outcome = 'not_found') AS not_found,
			COUNT(*) FILTER (WHERE outcome = 'no_eligible') AS no_eligible,
			COUNT(*) FILTER (WHERE outcome = 'failed') AS failed,
			COUNT(*) FILTER (WHERE "repeat") AS repeats
		FROM scan_logs
		WHERE event_id = ?
	`
	if err := r.db.WithContext(ctx).Raw(query, eventID).Scan(&overview).Error; err != nil {
		return nil, fmt.Errorf("failed to get scan overview: %w", err)
	}
	return &overview, nil
}

func (r *repository) GetStationActivity(ctx context.Context, eventID int64) ([]StationActivity, error) {
	var stations []StationActivity
	query := `
		SELECT
			station_id,
			COUNT(*) FILTER (WHERE action = 'lookup') AS lookups,
			COUNT(*) FILTER (WHERE action = 'submit' AND outcome = 'ok') AS submissions,
			COALESCE(SUM(ticket_count) FILTER (WHERE action = 'submit' AND outcome = 'ok'), 0) AS tickets,
			MAX(created_at) AS last_scan_at
		FROM scan_logs
		WHERE event_id = ? AND station_id <> ''
		GROUP BY station_id
		ORDER BY tickets DESC, station_id
	`
	if err := r.db.WithContext(ctx).Raw(query, eventID).Scan(&stations).Error; err != nil {
		return nil, fmt.Errorf("failed to get station activity: %w", err)
	}
	return stations, nil
}

func (r *repository) GetHourlyScans(ctx context.Context, eventID int64, since time.Time) ([]HourlyScans, error) {
	var hourly []HourlyScans
	query := `
		SELECT
			date_trunc('hour', created_at) AS hour,
			COUNT(*) FILTER (WHERE action = 'lookup') AS lookups,
			COUNT(*) FILTER (WHERE action = 'submit' AND outcome = 'ok') AS submissions
		FROM scan_logs
		WHERE event_id = ? AND created_at >= ?
		GROUP BY hour
		ORDER BY hour
	`
	if err := r.db.WithContext(ctx).Raw(query, eventID, since).Scan(&hourly).Error; err != nil {
		return nil, fmt.Errorf("failed to get hourly scans: %w", err)
	}
	return hourly, nil
}
