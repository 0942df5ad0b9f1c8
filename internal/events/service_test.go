package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"etik/pkg/cache"
	"etik/pkg/etikapi"
)

type fakeRepo struct {
	shows     []Show
	showCalls int
	event     *MarketplaceEvent
	err       error
}

func (f *fakeRepo) ListShows(ctx context.Context, eventID int64) ([]Show, error) {
	f.showCalls++
	return f.shows, f.err
}

func (f *fakeRepo) GetMarketplaceEvent(ctx context.Context, slug string) (*MarketplaceEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeRepo) GetCustomerTransaction(ctx context.Context, transactionID int64, token string) (*Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &Transaction{ID: transactionID}, nil
}

var night = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func TestListShowsIsCached(t *testing.T) {
	repo := &fakeRepo{shows: []Show{{ID: 1, Name: "Night 1", StartTime: night}}}
	svc := NewService(repo, cache.NewMemoryService())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		shows, err := svc.ListShows(ctx, 9)
		if err != nil || len(shows) != 1 || shows[0].Name != "Night 1" {
			t.Fatalf("unexpected shows %+v err=%v", shows, err)
		}
	}
	if repo.showCalls != 1 {
		t.Errorf("backend hit %d times, want 1", repo.showCalls)
	}

	if err := svc.InvalidateShows(ctx, 9); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	svc.ListShows(ctx, 9)
	if repo.showCalls != 2 {
		t.Errorf("invalidation should force a refetch, calls = %d", repo.showCalls)
	}

	svc.ListShows(ctx, 10)
	if err := svc.InvalidateAllShows(ctx); err != nil {
		t.Fatalf("invalidate all: %v", err)
	}
	svc.ListShows(ctx, 9)
	svc.ListShows(ctx, 10)
	if repo.showCalls != 5 {
		t.Errorf("calls = %d, want 5", repo.showCalls)
	}
}

func TestListShowsNotFound(t *testing.T) {
	repo := &fakeRepo{err: &etikapi.APIError{StatusCode: 404}}
	svc := NewService(repo, cache.NewMemoryService())

	if _, err := svc.ListShows(context.Background(), 9); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestGetMarketplaceEvent(t *testing.T) {
	repo := &fakeRepo{event: &MarketplaceEvent{
		ID:   9,
		Slug: "jazz-night",
		Shows: []Show{
			{ID: 1, StartTime: night, EndTime: night.Add(3 * time.Hour)},
			{ID: 2, StartTime: night.Add(24 * time.Hour)},
		},
	}}
	svc := NewService(repo, cache.NewMemoryService()).(*service)
	svc.now = func() time.Time { return night.Add(time.Hour) }

	event, err := svc.GetMarketplaceEvent(context.Background(), "  Jazz-Night ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Shows[0].Status != StatusActive || event.Shows[1].Status != StatusUpcoming {
		t.Errorf("unexpected statuses %s %s", event.Shows[0].Status, event.Shows[1].Status)
	}
	if event.Shows[1].TicketCategories == nil {
		t.Error("categories should serialize as an empty list")
	}

	if _, err := svc.GetMarketplaceEvent(context.Background(), " "); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("blank slug: expected ErrEventNotFound, got %v", err)
	}
}

func TestGetCustomerTransaction(t *testing.T) {
	svc := NewService(&fakeRepo{}, cache.NewMemoryService())
	ctx := context.Background()

	if _, err := svc.GetCustomerTransaction(ctx, 5, ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if tx, err := svc.GetCustomerTransaction(ctx, 5, "tok"); err != nil || tx.ID != 5 {
		t.Errorf("unexpected result %+v err=%v", tx, err)
	}

	forbidden := NewService(&fakeRepo{err: &etikapi.APIError{StatusCode: 403}}, cache.NewMemoryService())
	if _, err := forbidden.GetCustomerTransaction(ctx, 5, "wrong"); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("a bad token should look like a missing order, got %v", err)
	}
}

func TestShowStatus(t *testing.T) {
	show := Show{StartTime: night, EndTime: night.Add(2 * time.Hour)}
	tests := []struct {
		at   time.Time
		want Status
	}{
		{night.Add(-time.Minute), StatusUpcoming},
		{night, StatusActive},
		{night.Add(2 * time.Hour), StatusEnded},
	}
	for _, tt := range tests {
		if got := ShowStatus(show, tt.at); got != tt.want {
			t.Errorf("at %s: got %s, want %s", tt.at, got, tt.want)
		}
	}

	open := Show{StartTime: night}
	if got := ShowStatus(open, night.Add(48*time.Hour)); got != StatusActive {
		t.Errorf("open-ended show: got %s", got)
	}
}
