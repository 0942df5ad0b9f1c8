package checkin

import "etik/internal/shared/viewstate"

// StateResponse is the page state of one station and mode
type StateResponse struct {
	StationID string                  `json:"station_id"`
	Mode      Mode                    `json:"mode"`
	State     viewstate.State[Result] `json:"state"`
}
