package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) || !f.Empty() {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionPause)
	if !f.Has(ActionJump) || !f.Has(ActionPause) || f.Has(ActionTap) {
		t.Errorf("frame actions wrong: %v", f.Actions)
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("Clear() left actions: %v", f.Actions)
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionJump:  "Jump",
		ActionTap:   "Tap",
		ActionQuit:  "Quit",
		Action(999): "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}
