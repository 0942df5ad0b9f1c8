package stations

import (
	"context"
	"errors"
	"testing"

	"etik/pkg/cache"
)

func ptr[T any](v T) *T { return &v }

func TestGetPreferencesDefaults(t *testing.T) {
	svc := NewService(cache.NewMemoryService())

	prefs, err := svc.GetPreferences(context.Background(), "gate-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.Mode != "check-in" || prefs.CameraDeviceID != "" || len(prefs.CategoryIDs) != 0 {
		t.Errorf("unexpected defaults %+v", prefs)
	}
}

func TestUpdatePreferencesRemembersCamera(t *testing.T) {
	ctx := context.Background()
	svc := NewService(cache.NewMemoryService())

	_, err := svc.UpdatePreferences(ctx, "gate-a", UpdatePreferencesRequest{
		CameraDeviceID: ptr("cam-123"),
		EventID:        ptr(int64(7)),
		ShowID:         ptr(int64(3)),
		CategoryIDs:    []int64{10, 11},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// A partial update keeps everything else
	if _, err := svc.UpdatePreferences(ctx, "gate-a", UpdatePreferencesRequest{Mode: ptr("check-out")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	prefs, _ := svc.GetPreferences(ctx, "gate-a")
	if prefs.CameraDeviceID != "cam-123" || prefs.Mode != "check-out" || prefs.ShowID != 3 || len(prefs.CategoryIDs) != 2 {
		t.Errorf("unexpected preferences %+v", prefs)
	}
}

func TestChangingEventClearsFilter(t *testing.T) {
	ctx := context.Background()
	svc := NewService(cache.NewMemoryService())

	svc.UpdatePreferences(ctx, "gate-a", UpdatePreferencesRequest{EventID: ptr(int64(7)), ShowID: ptr(int64(3)), CategoryIDs: []int64{10}})
	prefs, _ := svc.UpdatePreferences(ctx, "gate-a", UpdatePreferencesRequest{EventID: ptr(int64(8))})

	if prefs.ShowID != 0 || len(prefs.CategoryIDs) != 0 {
		t.Errorf("filter of the previous event should be cleared, got %+v", prefs)
	}
}

func TestInvalidStationID(t *testing.T) {
	svc := NewService(cache.NewMemoryService())
	for _, id := range []string{"", "gate a", "gate:1"} {
		if _, err := svc.GetPreferences(context.Background(), id); !errors.Is(err, ErrInvalidStationID) {
			t.Errorf("station %q: expected ErrInvalidStationID, got %v", id, err)
		}
	}
}

func TestResetPreferences(t *testing.T) {
	ctx := context.Background()
	svc := NewService(cache.NewMemoryService())
	svc.UpdatePreferences(ctx, "gate-a", UpdatePreferencesRequest{CameraDeviceID: ptr("cam")})

	if err := svc.ResetPreferences(ctx, "gate-a"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	prefs, _ := svc.GetPreferences(ctx, "gate-a")
	if prefs.CameraDeviceID != "" {
		t.Errorf("expected camera to be forgotten, got %q", prefs.CameraDeviceID)
	}
}
