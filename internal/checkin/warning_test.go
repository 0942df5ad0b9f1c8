package checkin

import (
	"strings"
	"testing"

	"etik/internal/notifications"
	"etik/pkg/etikapi"
)

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"VIP", "VIP"},
		{strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
		{strings.Repeat("é", 40), strings.Repeat("é", 30) + "..."},
	}
	for _, tt := range tests {
		if got := truncateLabel(tt.in); got != tt.want {
			t.Errorf("truncateLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNoEligibleWarning(t *testing.T) {
	disabled := Selection{Mode: ModeCheckIn, AllDisabled: true}
	enabled := Selection{Mode: ModeCheckIn, Enabled: 1}
	labels := Labels{Show: "Night 1", Categories: []string{"VIP", "Regular"}}

	if NoEligibleWarning(ModeCheckIn, SourceManual, disabled, labels) != nil {
		t.Error("manual lookups never warn")
	}
	if NoEligibleWarning(ModeCheckIn, SourceQR, enabled, labels) != nil {
		t.Error("no warning while something is selectable")
	}

	w := NoEligibleWarning(ModeCheckOut, SourceQR, disabled, labels)
	if w == nil {
		t.Fatal("expected a warning")
	}
	if w.Level != notifications.LevelWarning {
		t.Errorf("level = %s", w.Level)
	}
	if w.Message != "No VIP, Regular ticket for Night 1 can be checked out" {
		t.Errorf("unexpected message %q", w.Message)
	}
}

func TestNoEligibleWarningTruncatesCategories(t *testing.T) {
	labels := Labels{Categories: []string{"Festival Pass Early Bird", "Festival Pass Regular"}}
	w := NoEligibleWarning(ModeCheckIn, SourceQR, Selection{AllDisabled: true}, labels)

	want := "No Festival Pass Early Bird, Fest... ticket for the selected show can be checked in"
	if w.Message != want {
		t.Errorf("got %q, want %q", w.Message, want)
	}
}

func TestResolveLabels(t *testing.T) {
	shows := []etikapi.Show{{
		ID:               1,
		Name:             "Night 1",
		TicketCategories: []etikapi.TicketCategory{{ID: 101, Name: "VIP Catalog"}},
	}}
	filter := Filter{ShowID: 1, CategoryIDs: []int64{101, 102, 999}}

	labels := ResolveLabels(filter, shows, sampleTransaction())
	if labels.Show != "Night 1" {
		t.Errorf("show = %q", labels.Show)
	}
	want := []string{"VIP Catalog", "Regular", "#999"}
	if strings.Join(labels.Categories, "|") != strings.Join(want, "|") {
		t.Errorf("categories = %v, want %v", labels.Categories, want)
	}

	// Without a catalog the transaction still names what it can
	labels = ResolveLabels(filter, nil, sampleTransaction())
	if labels.Show != "" || labels.Categories[0] != "VIP" {
		t.Errorf("unexpected fallback labels %+v", labels)
	}
}
