package checkin

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, scan *ScanLog) error
	// CountRecent counts lookups of eCode in mode since the given time
	CountRecent(ctx context.Context, eventID int64, eCode string, mode Mode, since time.Time) (int64, error)
	List(ctx context.Context, eventID int64, query ScanListQuery) ([]ScanLog, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, scan *ScanLog) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *repository) CountRecent(ctx context.Context, eventID int64, eCode string, mode Mode, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ScanLog{}).
		Where("event_id = ? AND e_code = ? AND mode = ?", eventID, eCode, mode).
		Where("action = ? AND outcome IN ?", ActionLookup, []string{OutcomeOK, OutcomeNoEligible}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repository) List(ctx context.Context, eventID int64, query ScanListQuery) ([]ScanLog, int64, error) {
	var scans []ScanLog
	var total int64

	db := r.db.WithContext(ctx).Model(&ScanLog{}).Where("event_id = ?", eventID)

	if query.ECode != "" {
		db = db.Where("e_code = ?", query.ECode)
	}
	if query.StationID != "" {
		db = db.Where("station_id = ?", query.StationID)
	}
	if query.Mode != "" {
		db = db.Where("mode = ?", query.Mode)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Order("created_at DESC").Offset(offset).Limit(query.Limit).Find(&scans).Error
	if err != nil {
		return nil, 0, err
	}

	return scans, total, nil
}
