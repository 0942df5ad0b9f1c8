package events

import "time"

type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusActive   Status = "ACTIVE"
	StatusEnded    Status = "ENDED"
)

// ShowStatus places a show relative to now. A show without an end time
// stays active once it has started.
func ShowStatus(show Show, now time.Time) Status {
	switch {
	case now.Before(show.StartTime):
		return StatusUpcoming
	case !show.EndTime.IsZero() && !now.Before(show.EndTime):
		return StatusEnded
	default:
		return StatusActive
	}
}
