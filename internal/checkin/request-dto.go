package checkin

// LookupRequest is one scan at a station. ShowID and CategoryIDs override
// the station's saved filter when present.
type LookupRequest struct {
	StationID   string     `json:"station_id" validate:"required,max=100"`
	ECode       string     `json:"e_code" validate:"required,max=255"`
	Source      ScanSource `json:"source" validate:"omitempty,oneof=qr manual"`
	ShowID      int64      `json:"show_id" validate:"omitempty,min=1"`
	CategoryIDs []int64    `json:"category_ids" validate:"omitempty,dive,min=1"`
}

// SubmitRequest confirms a check-in or check-out. A missing ticket_ids
// submits the pre-selected tickets.
type SubmitRequest struct {
	LookupRequest
	TicketIDs []int64 `json:"ticket_ids" validate:"omitempty,dive,min=1"`
}

func (r LookupRequest) filter() Filter {
	return Filter{ShowID: r.ShowID, CategoryIDs: r.CategoryIDs}
}
