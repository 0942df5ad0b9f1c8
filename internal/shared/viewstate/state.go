package viewstate

import "time"

// Phase is the tag of a page state
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// State is a tagged union of the phases a page goes through. Data is set
// only when loaded and Error only when failed.
type State[T any] struct {
	Phase     Phase     `json:"phase"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func Idle[T any]() State[T] {
	return State[T]{Phase: PhaseIdle, UpdatedAt: time.Now()}
}

func Loading[T any]() State[T] {
	return State[T]{Phase: PhaseLoading, UpdatedAt: time.Now()}
}

func Loaded[T any](data T) State[T] {
	return State[T]{Phase: PhaseLoaded, Data: &data, UpdatedAt: time.Now()}
}

func Failed[T any](err error) State[T] {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return State[T]{Phase: PhaseFailed, Error: msg, UpdatedAt: time.Now()}
}

// IsBusy reports whether a request is outstanding; triggering controls
// stay disabled while busy.
func (s State[T]) IsBusy() bool {
	return s.Phase == PhaseLoading
}

// Value returns the loaded data, if any
func (s State[T]) Value() (T, bool) {
	var zero T
	if s.Phase != PhaseLoaded || s.Data == nil {
		return zero, false
	}
	return *s.Data, true
}
