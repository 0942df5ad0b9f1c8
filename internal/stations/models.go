package stations

import "time"

// Preferences are remembered per station across sessions
type Preferences struct {
	StationID      string    `json:"station_id"`
	CameraDeviceID string    `json:"camera_device_id"`
	Mode           string    `json:"mode"`
	EventID        int64     `json:"event_id"`
	ShowID         int64     `json:"show_id"`
	CategoryIDs    []int64   `json:"category_ids"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdatePreferencesRequest is a partial update; nil fields are kept
type UpdatePreferencesRequest struct {
	CameraDeviceID *string `json:"camera_device_id" validate:"omitempty,max=255"`
	Mode           *string `json:"mode" validate:"omitempty,oneof=check-in check-out"`
	EventID        *int64  `json:"event_id" validate:"omitempty,min=1"`
	ShowID         *int64  `json:"show_id" validate:"omitempty,min=0"`
	CategoryIDs    []int64 `json:"category_ids" validate:"omitempty,dive,min=1"`
}
