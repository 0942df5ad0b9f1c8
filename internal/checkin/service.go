package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"etik/internal/notifications"
	"etik/internal/shared/viewstate"
	"etik/internal/stations"
	"etik/pkg/etikapi"
	"etik/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidMode         = errors.New("mode must be check-in or check-out")
	ErrEmptyCode           = errors.New("e-ticket code is required")
	ErrTransactionNotFound = errors.New("no transaction for this e-ticket code")
	ErrStationBusy         = errors.New("station has a request in flight")
)

// API is the part of the ETIK backend a station talks to
type API interface {
	GetCheckInTransaction(ctx context.Context, eventID int64, eCode string) (*etikapi.Transaction, error)
	CheckIn(ctx context.Context, eventID int64, payload etikapi.CheckInPayload) error
	CheckOut(ctx context.Context, eventID int64, payload etikapi.CheckInPayload) error
}

// Catalog names shows and categories for operator messages
type Catalog interface {
	ListShows(ctx context.Context, eventID int64) ([]etikapi.Show, error)
}

type Service interface {
	Lookup(ctx context.Context, eventID int64, operatorID string, mode Mode, req LookupRequest) (*Result, error)
	Submit(ctx context.Context, eventID int64, operatorID string, mode Mode, req SubmitRequest) (*SubmitResult, error)
	State(ctx context.Context, stationID string, mode Mode) (viewstate.State[Result], error)
	ListScans(ctx context.Context, eventID int64, query ScanListQuery) (*PaginatedScans, error)
}

// ServiceConfig tunes repeat detection and the busy guard
type ServiceConfig struct {
	// Lookups of the same code within RepeatWindow are flagged as repeats
	RepeatWindow time.Duration
	// A loading state older than BusyTimeout no longer blocks submits
	BusyTimeout time.Duration
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		RepeatWindow: 10 * time.Minute,
		BusyTimeout:  30 * time.Second,
	}
}

type service struct {
	api         API
	catalog     Catalog
	preferences stations.Service
	notifier    notifications.Notifier
	repo        Repository
	states      StateStore
	logger      *logger.Logger
	config      ServiceConfig
	now         func() time.Time
}

func NewService(
	api API,
	catalog Catalog,
	preferences stations.Service,
	notifier notifications.Notifier,
	repo Repository,
	states StateStore,
	l *logger.Logger,
	config ServiceConfig,
) Service {
	return &service{
		api:         api,
		catalog:     catalog,
		preferences: preferences,
		notifier:    notifier,
		repo:        repo,
		states:      states,
		logger:      l,
		config:      config,
		now:         time.Now,
	}
}

func (s *service) Lookup(ctx context.Context, eventID int64, operatorID string, mode Mode, req LookupRequest) (*Result, error) {
	req.ECode = strings.TrimSpace(req.ECode)
	if err := s.validate(mode, req); err != nil {
		return nil, err
	}
	if req.Source == "" {
		req.Source = SourceQR
	}

	filter := s.resolveFilter(ctx, eventID, req)
	s.putState(ctx, req.StationID, mode, viewstate.Loading[Result]())

	tx, err := s.fetch(ctx, eventID, req.ECode)
	if err != nil {
		s.fail(ctx, eventID, operatorID, mode, ActionLookup, req, err)
		return nil, err
	}

	sel := Derive(mode, tx, filter)
	result := &Result{
		ECode:       req.ECode,
		Mode:        mode,
		Source:      req.Source,
		Filter:      filter,
		Transaction: tx,
		Selection:   sel,
		Repeat:      s.isRepeat(ctx, eventID, req.ECode, mode),
		ScannedAt:   s.now(),
	}

	if sel.AllDisabled && req.Source == SourceQR {
		labels := ResolveLabels(filter, s.shows(ctx, eventID), tx)
		if warning := NoEligibleWarning(mode, req.Source, sel, labels); warning != nil {
			warning.StationID = req.StationID
			warning.EventID = eventID
			s.publish(ctx, *warning)
			result.Warning = warning
		}
	}

	outcome := OutcomeOK
	if sel.AllDisabled {
		outcome = OutcomeNoEligible
	}
	s.record(ctx, &ScanLog{
		EventID:       eventID,
		ECode:         req.ECode,
		StationID:     req.StationID,
		OperatorID:    parseOperator(operatorID),
		Mode:          mode,
		Action:        ActionLookup,
		Source:        string(req.Source),
		TransactionID: tx.ID,
		EnabledCount:  sel.Enabled,
		Outcome:       outcome,
		Repeat:        result.Repeat,
	})
	s.logger.LogScanLookup(ctx, req.StationID, req.ECode, string(mode), outcome, sel.Enabled)

	s.putState(ctx, req.StationID, mode, viewstate.Loaded(*result))
	return result, nil
}

func (s *service) Submit(ctx context.Context, eventID int64, operatorID string, mode Mode, req SubmitRequest) (*SubmitResult, error) {
	req.ECode = strings.TrimSpace(req.ECode)
	if err := s.validate(mode, req.LookupRequest); err != nil {
		return nil, err
	}
	if s.isBusy(ctx, req.StationID, mode) {
		return nil, ErrStationBusy
	}

	filter := s.resolveFilter(ctx, eventID, req.LookupRequest)

	// The page may be stale; derive from what the backend has now
	tx, err := s.fetch(ctx, eventID, req.ECode)
	if err != nil {
		s.fail(ctx, eventID, operatorID, mode, ActionSubmit, req.LookupRequest, err)
		return nil, err
	}

	sel := Derive(mode, tx, filter)
	payload, count, err := BuildSubmission(tx, sel, req.TicketIDs)
	if err != nil {
		return nil, err
	}

	s.putState(ctx, req.StationID, mode, viewstate.Loading[Result]())

	if mode == ModeCheckOut {
		err = s.api.CheckOut(ctx, eventID, payload)
	} else {
		err = s.api.CheckIn(ctx, eventID, payload)
	}
	if err != nil {
		err = fmt.Errorf("failed to submit %s: %w", mode, err)
		s.fail(ctx, eventID, operatorID, mode, ActionSubmit, req.LookupRequest, err)
		return nil, err
	}

	s.publish(ctx, notifications.Success(
		"Success",
		fmt.Sprintf("%d ticket(s) %s", count, mode.Verb()),
	).ForStation(req.StationID).ForEvent(eventID).Build())

	s.record(ctx, &ScanLog{
		EventID:       eventID,
		ECode:         req.ECode,
		StationID:     req.StationID,
		OperatorID:    parseOperator(operatorID),
		Mode:          mode,
		Action:        ActionSubmit,
		Source:        string(SourceManual),
		TransactionID: tx.ID,
		EnabledCount:  sel.Enabled,
		TicketCount:   count,
		Outcome:       OutcomeOK,
	})
	s.logger.LogCheckInSubmitted(ctx, req.StationID, tx.ID, string(mode), count)

	submitted := &SubmitResult{Payload: payload, TicketCount: count}

	refreshed, err := s.fetch(ctx, eventID, req.ECode)
	if err != nil {
		s.logger.WarnContext(ctx, "Refresh after submit failed",
			slog.String("station_id", req.StationID),
			slog.String("e_code", req.ECode),
			slog.String("error", err.Error()),
		)
		s.putState(ctx, req.StationID, mode, viewstate.Failed[Result](err))
		return submitted, nil
	}

	submitted.Refreshed = &Result{
		ECode:       req.ECode,
		Mode:        mode,
		Source:      SourceManual,
		Filter:      filter,
		Transaction: refreshed,
		Selection:   Derive(mode, refreshed, filter),
		ScannedAt:   s.now(),
	}
	s.putState(ctx, req.StationID, mode, viewstate.Loaded(*submitted.Refreshed))

	return submitted, nil
}

func (s *service) State(ctx context.Context, stationID string, mode Mode) (viewstate.State[Result], error) {
	if !mode.IsValid() {
		return viewstate.State[Result]{}, ErrInvalidMode
	}
	if !stations.ValidStationID(stationID) {
		return viewstate.State[Result]{}, stations.ErrInvalidStationID
	}
	return s.states.Get(ctx, stationID, mode)
}

func (s *service) ListScans(ctx context.Context, eventID int64, query ScanListQuery) (*PaginatedScans, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	scans, total, err := s.repo.List(ctx, eventID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}

	return &PaginatedScans{
		Scans:      scans,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}, nil
}

func (s *service) validate(mode Mode, req LookupRequest) error {
	if !mode.IsValid() {
		return ErrInvalidMode
	}
	if !stations.ValidStationID(req.StationID) {
		return stations.ErrInvalidStationID
	}
	if req.ECode == "" {
		return ErrEmptyCode
	}
	return nil
}

// resolveFilter prefers the request's filter and falls back to the one the
// station saved for this event
func (s *service) resolveFilter(ctx context.Context, eventID int64, req LookupRequest) Filter {
	filter := req.filter()
	if !filter.IsEmpty() {
		return filter
	}

	prefs, err := s.preferences.GetPreferences(ctx, req.StationID)
	if err != nil {
		s.logger.WarnContext(ctx, "Station preferences unavailable",
			slog.String("station_id", req.StationID),
			slog.String("error", err.Error()),
		)
		return filter
	}
	if prefs.EventID != eventID {
		return filter
	}
	return Filter{ShowID: prefs.ShowID, CategoryIDs: prefs.CategoryIDs}
}

func (s *service) fetch(ctx context.Context, eventID int64, eCode string) (*Transaction, error) {
	tx, err := s.api.GetCheckInTransaction(ctx, eventID, eCode)
	if err != nil {
		if errors.Is(err, etikapi.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", eCode, ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return tx, nil
}

func (s *service) shows(ctx context.Context, eventID int64) []etikapi.Show {
	if s.catalog == nil {
		return nil
	}
	shows, err := s.catalog.ListShows(ctx, eventID)
	if err != nil {
		// Labels fall back to the transaction's own names
		s.logger.WarnContext(ctx, "Show catalog unavailable",
			slog.Int64("event_id", eventID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return shows
}

func (s *service) isRepeat(ctx context.Context, eventID int64, eCode string, mode Mode) bool {
	count, err := s.repo.CountRecent(ctx, eventID, eCode, mode, s.now().Add(-s.config.RepeatWindow))
	if err != nil {
		s.logger.WarnContext(ctx, "Repeat check failed", slog.String("error", err.Error()))
		return false
	}
	return count > 0
}

func (s *service) isBusy(ctx context.Context, stationID string, mode Mode) bool {
	state, err := s.states.Get(ctx, stationID, mode)
	if err != nil {
		return false
	}
	return state.IsBusy() && s.now().Sub(state.UpdatedAt) < s.config.BusyTimeout
}

// fail records a failed lookup or submit and tells the station
func (s *service) fail(ctx context.Context, eventID int64, operatorID string, mode Mode, action string, req LookupRequest, err error) {
	outcome := OutcomeFailed
	title := "Request failed"
	if errors.Is(err, ErrTransactionNotFound) {
		outcome = OutcomeNotFound
		title = "Ticket not found"
	}

	s.putState(ctx, req.StationID, mode, viewstate.Failed[Result](err))
	s.publish(ctx, notifications.Error(title, err.Error()).
		ForStation(req.StationID).
		ForEvent(eventID).
		Build())
	s.record(ctx, &ScanLog{
		EventID:    eventID,
		ECode:      req.ECode,
		StationID:  req.StationID,
		OperatorID: parseOperator(operatorID),
		Mode:       mode,
		Action:     action,
		Source:     string(req.Source),
		Outcome:    outcome,
		Error:      err.Error(),
	})
	s.logger.LogScanLookup(ctx, req.StationID, req.ECode, string(mode), outcome, 0)
}

func (s *service) publish(ctx context.Context, n notifications.Notification) {
	if err := s.notifier.Publish(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish notification",
			slog.String("level", string(n.Level)),
			slog.String("station_id", n.StationID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *service) record(ctx context.Context, scan *ScanLog) {
	if err := s.repo.Create(ctx, scan); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record scan",
			slog.String("e_code", scan.ECode),
			slog.String("error", err.Error()),
		)
	}
}

func (s *service) putState(ctx context.Context, stationID string, mode Mode, state viewstate.State[Result]) {
	// isBusy compares against the same clock
	state.UpdatedAt = s.now()
	if err := s.states.Put(ctx, stationID, mode, state); err != nil {
		s.logger.WarnContext(ctx, "Failed to store station state",
			slog.String("station_id", stationID),
			slog.String("error", err.Error()),
		)
	}
}

func parseOperator(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
