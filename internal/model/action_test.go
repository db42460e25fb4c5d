package model

import "testing"

// TestActionString tests the String method.
func TestActionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action Action
		want   string
	}{
		{ActionUnchanged, "unchanged"},
		{ActionCreated, "created"},
		{ActionModified, "modified"},
		{ActionSkipped, "skipped"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", int(tt.action), got, tt.want)
		}
	}
}

// TestParseAction tests round-tripping actions through their string form.
func TestParseAction(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		for _, a := range []Action{ActionUnchanged, ActionCreated, ActionModified, ActionSkipped} {
			if got := ParseAction(a.String()); got != a {
				t.Errorf("ParseAction(%q) = %v, want %v", a.String(), got, a)
			}
		}
	})

	t.Run("unknown string maps to unchanged", func(t *testing.T) {
		t.Parallel()

		if got := ParseAction("exploded"); got != ActionUnchanged {
			t.Errorf("ParseAction(\"exploded\") = %v, want ActionUnchanged", got)
		}
	})
}
