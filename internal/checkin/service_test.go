package checkin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"etik/internal/notifications"
	"etik/internal/shared/viewstate"
	"etik/internal/stations"
	"etik/pkg/cache"
	"etik/pkg/etikapi"
	"etik/pkg/logger"
)

type fakeAPI struct {
	mu        sync.Mutex
	tx        *Transaction
	getErr    error
	submitErr error
	fetches   int
	submitted []etikapi.CheckInPayload
	// applied after a successful submit, emulating the backend
	onSubmit func(tx *Transaction, mode Mode)
}

func (f *fakeAPI) GetCheckInTransaction(ctx context.Context, eventID int64, eCode string) (*etikapi.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.tx, nil
}

func (f *fakeAPI) submit(mode Mode, payload etikapi.CheckInPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, payload)
	if f.onSubmit != nil {
		f.onSubmit(f.tx, mode)
	}
	return nil
}

func (f *fakeAPI) CheckIn(ctx context.Context, eventID int64, payload etikapi.CheckInPayload) error {
	return f.submit(ModeCheckIn, payload)
}

func (f *fakeAPI) CheckOut(ctx context.Context, eventID int64, payload etikapi.CheckInPayload) error {
	return f.submit(ModeCheckOut, payload)
}

type fakeCatalog struct {
	shows []etikapi.Show
	err   error
}

func (f *fakeCatalog) ListShows(ctx context.Context, eventID int64) ([]etikapi.Show, error) {
	return f.shows, f.err
}

type fakeRepo struct {
	mu    sync.Mutex
	scans []ScanLog
}

func (f *fakeRepo) Create(ctx context.Context, scan *ScanLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	scan.CreatedAt = time.Now()
	f.scans = append(f.scans, *scan)
	return nil
}

func (f *fakeRepo) CountRecent(ctx context.Context, eventID int64, eCode string, mode Mode, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, s := range f.scans {
		if s.EventID == eventID && s.ECode == eCode && s.Mode == mode && s.Action == ActionLookup &&
			(s.Outcome == OutcomeOK || s.Outcome == OutcomeNoEligible) && !s.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) List(ctx context.Context, eventID int64, query ScanListQuery) ([]ScanLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scans, int64(len(f.scans)), nil
}

type recorder struct {
	mu   sync.Mutex
	sent []notifications.Notification
}

func (r *recorder) Publish(ctx context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recorder) levels() []notifications.Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notifications.Level
	for _, n := range r.sent {
		out = append(out, n.Level)
	}
	return out
}

type harness struct {
	svc    Service
	api    *fakeAPI
	repo   *fakeRepo
	notes  *recorder
	prefs  stations.Service
	states StateStore
}

func newHarness(tx *Transaction) *harness {
	mem := cache.NewMemoryService()
	h := &harness{
		api:    &fakeAPI{tx: tx},
		repo:   &fakeRepo{},
		notes:  &recorder{},
		prefs:  stations.NewService(mem),
		states: NewStateStore(mem),
	}
	catalog := &fakeCatalog{shows: []etikapi.Show{{ID: 1, Name: "Night 1"}}}
	h.svc = NewService(h.api, catalog, h.prefs, h.notes, h.repo, h.states, logger.New(), DefaultServiceConfig())
	return h
}

const operator = "6f1c2a7e-3b4d-4c5e-8f90-a1b2c3d4e5f6"

var vipFilter = LookupRequest{StationID: "gate-a", ECode: "E-100", ShowID: 1, CategoryIDs: []int64{101}}

// Ticket 1 has a check-in record, ticket 2 an empty history. On the
// check-out page only ticket 1 is offered.
func TestLookupCheckOutPage(t *testing.T) {
	h := newHarness(sampleTransaction())

	result, err := h.svc.Lookup(context.Background(), 9, operator, ModeCheckOut, vipFilter)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	a, _ := result.Selection.Ticket(1)
	b, _ := result.Selection.Ticket(2)
	if !a.Selected || a.Disabled {
		t.Errorf("ticket 1 should be checked and enabled: %+v", a)
	}
	if b.Selected || !b.Disabled {
		t.Errorf("ticket 2 should be disabled: %+v", b)
	}
	if result.Warning != nil || len(h.notes.levels()) != 0 {
		t.Error("no warning expected when something is eligible")
	}

	state, _ := h.svc.State(context.Background(), "gate-a", ModeCheckOut)
	if v, ok := state.Value(); !ok || v.ECode != "E-100" {
		t.Errorf("expected loaded state, got %+v", state)
	}
	if len(h.repo.scans) != 1 || h.repo.scans[0].Outcome != OutcomeOK || h.repo.scans[0].EnabledCount != 1 {
		t.Errorf("unexpected scan log %+v", h.repo.scans)
	}
}

func TestLookupWarnsOncePerQRScan(t *testing.T) {
	h := newHarness(sampleTransaction())
	req := vipFilter
	req.CategoryIDs = []int64{999}

	result, err := h.svc.Lookup(context.Background(), 9, operator, ModeCheckIn, req)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if result.Warning == nil || result.Warning.StationID != "gate-a" || result.Warning.EventID != 9 {
		t.Fatalf("expected a station warning, got %+v", result.Warning)
	}
	if result.Warning.Message != "No #999 ticket for Night 1 can be checked in" {
		t.Errorf("unexpected message %q", result.Warning.Message)
	}

	// A manual re-lookup of the same code does not warn again
	req.Source = SourceManual
	result, _ = h.svc.Lookup(context.Background(), 9, operator, ModeCheckIn, req)
	if result.Warning != nil {
		t.Error("manual lookups must not warn")
	}
	if !result.Repeat {
		t.Error("second lookup of the same code should be flagged as a repeat")
	}

	levels := h.notes.levels()
	if len(levels) != 1 || levels[0] != notifications.LevelWarning {
		t.Errorf("expected exactly one warning, got %v", levels)
	}
}

func TestLookupNotFound(t *testing.T) {
	h := newHarness(nil)
	h.api.getErr = &etikapi.APIError{StatusCode: 404, Message: "not found"}

	_, err := h.svc.Lookup(context.Background(), 9, operator, ModeCheckIn, vipFilter)
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}

	state, _ := h.svc.State(context.Background(), "gate-a", ModeCheckIn)
	if state.Phase != viewstate.PhaseFailed {
		t.Errorf("expected failed state, got %s", state.Phase)
	}
	if levels := h.notes.levels(); len(levels) != 1 || levels[0] != notifications.LevelError {
		t.Errorf("expected one error notification, got %v", levels)
	}
	if h.repo.scans[0].Outcome != OutcomeNotFound {
		t.Errorf("outcome = %s", h.repo.scans[0].Outcome)
	}
}

func TestLookupUsesStationPreferences(t *testing.T) {
	h := newHarness(sampleTransaction())
	ctx := context.Background()
	event := int64(9)
	show := int64(1)
	h.prefs.UpdatePreferences(ctx, "gate-a", stations.UpdatePreferencesRequest{EventID: &event, ShowID: &show, CategoryIDs: []int64{102}})

	result, err := h.svc.Lookup(ctx, 9, operator, ModeCheckIn, LookupRequest{StationID: "gate-a", ECode: "E-100"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if state, _ := result.Selection.Ticket(3); !state.Selected {
		t.Errorf("saved filter should select the Regular ticket: %+v", result.Filter)
	}

	// Preferences saved for another event are ignored
	result, _ = h.svc.Lookup(ctx, 10, operator, ModeCheckIn, LookupRequest{StationID: "gate-a", ECode: "E-100"})
	if !result.Filter.IsEmpty() || !result.Selection.AllDisabled {
		t.Errorf("unexpected filter %+v", result.Filter)
	}
}

func TestLookupValidation(t *testing.T) {
	h := newHarness(sampleTransaction())
	ctx := context.Background()

	if _, err := h.svc.Lookup(ctx, 9, operator, Mode("exit"), vipFilter); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
	req := vipFilter
	req.ECode = "   "
	if _, err := h.svc.Lookup(ctx, 9, operator, ModeCheckIn, req); !errors.Is(err, ErrEmptyCode) {
		t.Errorf("expected ErrEmptyCode, got %v", err)
	}
	req = vipFilter
	req.StationID = "gate a"
	if _, err := h.svc.Lookup(ctx, 9, operator, ModeCheckIn, req); !errors.Is(err, stations.ErrInvalidStationID) {
		t.Errorf("expected ErrInvalidStationID, got %v", err)
	}
}

func TestSubmitRefetchesAndRederives(t *testing.T) {
	h := newHarness(sampleTransaction())
	h.api.onSubmit = func(tx *Transaction, mode Mode) {
		// backend appends a check-in record to ticket 2
		tx.TransactionTicketCategories[0].Tickets[1].HistoryCheckIns = append(
			tx.TransactionTicketCategories[0].Tickets[1].HistoryCheckIns,
			entry(9, etikapi.HistoryCheckInType, 120),
		)
	}

	result, err := h.svc.Submit(context.Background(), 9, operator, ModeCheckIn, SubmitRequest{LookupRequest: vipFilter})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.TicketCount != 1 || len(h.api.submitted) != 1 {
		t.Fatalf("unexpected submit result %+v", result)
	}
	if h.api.fetches != 2 {
		t.Errorf("expected a fetch before and after the mutation, got %d", h.api.fetches)
	}
	if result.Refreshed == nil || !result.Refreshed.Selection.AllDisabled {
		t.Errorf("refreshed selection should have nothing left to check in: %+v", result.Refreshed)
	}
	if levels := h.notes.levels(); len(levels) != 1 || levels[0] != notifications.LevelSuccess {
		t.Errorf("expected one success notification, got %v", levels)
	}
}

func TestSubmitFailureDoesNotRetry(t *testing.T) {
	h := newHarness(sampleTransaction())
	h.api.submitErr = errors.New("connection reset")

	_, err := h.svc.Submit(context.Background(), 9, operator, ModeCheckIn, SubmitRequest{LookupRequest: vipFilter})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(h.api.submitted) != 0 || h.api.fetches != 1 {
		t.Errorf("no retry and no refresh expected: fetches=%d", h.api.fetches)
	}
	if levels := h.notes.levels(); len(levels) != 1 || levels[0] != notifications.LevelError {
		t.Errorf("expected one error notification, got %v", levels)
	}
	state, _ := h.svc.State(context.Background(), "gate-a", ModeCheckIn)
	if state.Phase != viewstate.PhaseFailed {
		t.Errorf("expected failed state, got %s", state.Phase)
	}
}

func TestSubmitRejectedWhileBusy(t *testing.T) {
	h := newHarness(sampleTransaction())
	h.states.Put(context.Background(), "gate-a", ModeCheckIn, viewstate.Loading[Result]())

	_, err := h.svc.Submit(context.Background(), 9, operator, ModeCheckIn, SubmitRequest{LookupRequest: vipFilter})
	if !errors.Is(err, ErrStationBusy) {
		t.Errorf("expected ErrStationBusy, got %v", err)
	}
}

func TestStationStateUsesServiceClock(t *testing.T) {
	h := newHarness(sampleTransaction())
	svc := h.svc.(*service)
	clock := time.Date(2026, 10, 19, 19, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	if _, err := h.svc.Lookup(context.Background(), 9, operator, ModeCheckIn, vipFilter); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	state, _ := h.svc.State(context.Background(), "gate-a", ModeCheckIn)
	if !state.UpdatedAt.Equal(clock) {
		t.Errorf("state stamped %v, want %v", state.UpdatedAt, clock)
	}

	loading := viewstate.Loading[Result]()
	loading.UpdatedAt = clock
	h.states.Put(context.Background(), "gate-a", ModeCheckIn, loading)

	clock = clock.Add(5 * time.Second)
	if _, err := h.svc.Submit(context.Background(), 9, operator, ModeCheckIn, SubmitRequest{LookupRequest: vipFilter}); !errors.Is(err, ErrStationBusy) {
		t.Errorf("fresh loading state should block, got %v", err)
	}

	clock = clock.Add(svc.config.BusyTimeout)
	if _, err := h.svc.Submit(context.Background(), 9, operator, ModeCheckIn, SubmitRequest{LookupRequest: vipFilter}); errors.Is(err, ErrStationBusy) {
		t.Error("stale loading state should no longer block")
	}
}

func TestSubmitNothingEligible(t *testing.T) {
	h := newHarness(sampleTransaction())
	req := SubmitRequest{LookupRequest: vipFilter, TicketIDs: []int64{1}}

	_, err := h.svc.Submit(context.Background(), 9, operator, ModeCheckIn, req)
	if !errors.Is(err, ErrTicketNotEligible) {
		t.Errorf("expected ErrTicketNotEligible, got %v", err)
	}
	if len(h.api.submitted) != 0 {
		t.Error("nothing should reach the backend")
	}
}

func TestListScansPagination(t *testing.T) {
	h := newHarness(sampleTransaction())
	for i := 0; i < 3; i++ {
		h.svc.Lookup(context.Background(), 9, operator, ModeCheckIn, vipFilter)
	}

	page, err := h.svc.ListScans(context.Background(), 9, ScanListQuery{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.TotalCount != 3 || page.TotalPages != 2 {
		t.Errorf("unexpected page %+v", page)
	}
}
