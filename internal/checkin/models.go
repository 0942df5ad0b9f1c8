package checkin

import (
	"time"

	"etik/internal/notifications"
	"etik/pkg/etikapi"

	"github.com/google/uuid"
)

type (
	Transaction               = etikapi.Transaction
	TransactionTicketCategory = etikapi.TransactionTicketCategory
	Ticket                    = etikapi.Ticket
	HistoryCheckIn            = etikapi.HistoryCheckIn
)

// Mode selects which page policy applies to a scan
type Mode string

const (
	ModeCheckIn  Mode = "check-in"
	ModeCheckOut Mode = "check-out"
)

func (m Mode) IsValid() bool {
	return m == ModeCheckIn || m == ModeCheckOut
}

// Verb is the past participle used in operator messages
func (m Mode) Verb() string {
	if m == ModeCheckOut {
		return "checked out"
	}
	return "checked in"
}

// ScanSource tells a fresh QR decode apart from a manual re-lookup
type ScanSource string

const (
	SourceQR     ScanSource = "qr"
	SourceManual ScanSource = "manual"
)

// Filter is the show and ticket categories the station is admitting
type Filter struct {
	ShowID      int64   `json:"show_id"`
	CategoryIDs []int64 `json:"category_ids"`
}

func (f Filter) IsEmpty() bool {
	return f.ShowID == 0 && len(f.CategoryIDs) == 0
}

// Contains reports whether (showID, categoryID) is inside the filter
func (f Filter) Contains(showID, categoryID int64) bool {
	if showID != f.ShowID {
		return false
	}
	for _, id := range f.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// TicketState is the derived checkbox state of one ticket
type TicketState struct {
	TicketID   int64                `json:"ticket_id"`
	Code       string               `json:"code"`
	HolderName string               `json:"holder_name"`
	Status     etikapi.TicketStatus `json:"status"`
	ShowID     int64                `json:"show_id"`
	CategoryID int64                `json:"category_id"`
	Latest     *HistoryCheckIn      `json:"latest,omitempty"`
	CheckedIn  bool                 `json:"checked_in"`
	CheckedOut bool                 `json:"checked_out"`
	InScope    bool                 `json:"in_scope"`
	Selected   bool                 `json:"selected"`
	Disabled   bool                 `json:"disabled"`
}

// GroupState is one ticket category line item of the transaction
type GroupState struct {
	TransactionTicketCategoryID int64         `json:"transaction_ticket_category_id"`
	CategoryID                  int64         `json:"category_id"`
	CategoryName                string        `json:"category_name"`
	ShowID                      int64         `json:"show_id"`
	Expanded                    bool          `json:"expanded"`
	Tickets                     []TicketState `json:"tickets"`
}

type Selection struct {
	Mode        Mode         `json:"mode"`
	Groups      []GroupState `json:"groups"`
	Enabled     int          `json:"enabled"`
	Total       int          `json:"total"`
	AllDisabled bool         `json:"all_disabled"`
}

// Result is what a station page holds after a lookup
type Result struct {
	ECode       string                      `json:"e_code"`
	Mode        Mode                        `json:"mode"`
	Source      ScanSource                  `json:"source"`
	Filter      Filter                      `json:"filter"`
	Transaction *Transaction                `json:"transaction"`
	Selection   Selection                   `json:"selection"`
	Warning     *notifications.Notification `json:"warning,omitempty"`
	Repeat      bool                        `json:"repeat"`
	ScannedAt   time.Time                   `json:"scanned_at"`
}

type SubmitResult struct {
	Payload     etikapi.CheckInPayload `json:"payload"`
	TicketCount int                    `json:"ticket_count"`
	// Refreshed is nil when the post-mutation re-fetch failed
	Refreshed *Result `json:"refreshed,omitempty"`
}

// Scan outcomes recorded in the scan log
const (
	OutcomeOK         = "ok"
	OutcomeNoEligible = "no_eligible"
	OutcomeNotFound   = "not_found"
	OutcomeFailed     = "failed"
)

const (
	ActionLookup = "lookup"
	ActionSubmit = "submit"
)

// ScanLog is the station-side audit trail of lookups and submissions
type ScanLog struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID       int64     `json:"event_id" gorm:"not null;index:idx_scan_logs_event_code"`
	ECode         string    `json:"e_code" gorm:"not null;size:255;index:idx_scan_logs_event_code"`
	StationID     string    `json:"station_id" gorm:"size:100;index"`
	OperatorID    uuid.UUID `json:"operator_id" gorm:"type:uuid"`
	Mode          Mode      `json:"mode" gorm:"type:varchar(20);not null"`
	Action        string    `json:"action" gorm:"type:varchar(20);not null"`
	Source        string    `json:"source" gorm:"type:varchar(20)"`
	TransactionID int64     `json:"transaction_id"`
	EnabledCount  int       `json:"enabled_count"`
	TicketCount   int       `json:"ticket_count"`
	Outcome       string    `json:"outcome" gorm:"type:varchar(20);not null"`
	Repeat        bool      `json:"repeat" gorm:"default:false"`
	Error         string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (ScanLog) TableName() string {
	return "scan_logs"
}

type ScanListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	ECode     string `form:"e_code"`
	StationID string `form:"station_id"`
	Mode      string `form:"mode" binding:"omitempty,oneof=check-in check-out"`
}

type PaginatedScans struct {
	Scans      []ScanLog `json:"scans"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
