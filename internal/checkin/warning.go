package checkin

import (
	"fmt"
	"strings"

	"etik/internal/notifications"
	"etik/pkg/etikapi"
)

const maxLabelLength = 30

// Labels names the selected show and categories for operator messages
type Labels struct {
	Show       string
	Categories []string
}

// truncateLabel cuts s to maxLabelLength runes and appends "..."
func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= maxLabelLength {
		return s
	}
	return string(runes[:maxLabelLength]) + "..."
}

// NoEligibleWarning returns the one-shot warning for a fresh QR scan that
// left every ticket disabled, or nil when no warning is due.
func NoEligibleWarning(mode Mode, source ScanSource, sel Selection, labels Labels) *notifications.Notification {
	if source != SourceQR || !sel.AllDisabled {
		return nil
	}

	categories := truncateLabel(strings.Join(labels.Categories, ", "))
	show := labels.Show
	if show == "" {
		show = "the selected show"
	}

	n := notifications.Warning(
		"No eligible tickets",
		fmt.Sprintf("No %s ticket for %s can be %s", categories, show, mode.Verb()),
	).Build()
	return &n
}

// ResolveLabels names the filter using the event catalog first and the
// transaction's own line items second. Unknown ids are shown as "#<id>".
func ResolveLabels(filter Filter, shows []etikapi.Show, tx *Transaction) Labels {
	categoryNames := make(map[int64]string)
	var labels Labels

	for _, show := range shows {
		if show.ID == filter.ShowID {
			labels.Show = show.Name
		}
		for _, cat := range show.TicketCategories {
			categoryNames[cat.ID] = cat.Name
		}
	}
	if tx != nil {
		for _, line := range tx.TransactionTicketCategories {
			cat := line.TicketCategory
			if _, ok := categoryNames[cat.ID]; !ok && cat.Name != "" {
				categoryNames[cat.ID] = cat.Name
			}
			if labels.Show == "" && cat.Show != nil && cat.Show.ID == filter.ShowID {
				labels.Show = cat.Show.Name
			}
		}
	}

	for _, id := range filter.CategoryIDs {
		name, ok := categoryNames[id]
		if !ok {
			name = fmt.Sprintf("#%d", id)
		}
		labels.Categories = append(labels.Categories, name)
	}
	return labels
}
