package analytics

import "time"

// ScanOverview totals station activity for one event
type ScanOverview struct {
	Lookups           int64 `json:"lookups"`
	Submissions       int64 `json:"submissions"`
	TicketsCheckedIn  int64 `json:"tickets_checked_in"`
	TicketsCheckedOut int64 `json:"tickets_checked_out"`
	NotFound          int64 `json:"not_found"`
	NoEligible        int64 `json:"no_eligible"`
	Failed            int64 `json:"failed"`
	Repeats           int64 `json:"repeats"`
}

type StationActivity struct {
	StationID   string     `json:"station_id"`
	Lookups     int64      `json:"lookups"`
	Submissions int64      `json:"submissions"`
	Tickets     int64      `json:"tickets"`
	LastScanAt  *time.Time `json:"last_scan_at"`
}

type HourlyScans struct {
	Hour        time.Time `json:"hour"`
	Lookups     int64     `json:"lookups"`
	Submissions int64     `json:"submissions"`
}

type EventScanAnalytics struct {
	EventID     int64             `json:"event_id"`
	Overview    ScanOverview      `json:"overview"`
	Stations    []StationActivity `json:"stations"`
	Hourly      []HourlyScans     `json:"hourly"`
	GeneratedAt time.Time         `json:"generated_at"`
}
