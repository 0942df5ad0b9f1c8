package viewstate

import (
	"errors"
	"testing"
)

func TestTransitions(t *testing.T) {
	idle := Idle[int]()
	if idle.Phase != PhaseIdle || idle.IsBusy() {
		t.Fatalf("unexpected idle state %+v", idle)
	}
	if _, ok := idle.Value(); ok {
		t.Error("idle state must not carry data")
	}

	if !Loading[int]().IsBusy() {
		t.Error("loading state must be busy")
	}

	loaded := Loaded(7)
	v, ok := loaded.Value()
	if !ok || v != 7 {
		t.Errorf("expected loaded value 7, got %v %v", v, ok)
	}

	failed := Failed[int](errors.New("boom"))
	if failed.Phase != PhaseFailed || failed.Error != "boom" {
		t.Errorf("unexpected failed state %+v", failed)
	}
	if _, ok := failed.Value(); ok {
		t.Error("failed state must not carry data")
	}
	if Failed[int](nil).Error == "" {
		t.Error("failed state needs a message even for nil errors")
	}
}
