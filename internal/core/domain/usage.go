package domain

import "time"

// UsageSession records one user opening one tool, from click to a possibly
// never-observed close. A nil SessionEnd means the session is still open or
// the close beacon never arrived; both are normal terminal states.
type UsageSession struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	ItemID          *int64     `json:"item_id,omitempty"`
	ClickedAt       time.Time  `json:"clicked_at"`
	SessionStart    time.Time  `json:"session_start"`
	SessionEnd      *time.Time `json:"session_end,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
}

// Closed reports whether a close signal has been applied to the session.
func (s *UsageSession) Closed() bool {
	return s.SessionEnd != nil
}

// ComputeDuration returns the whole-second duration between start and end,
// floored and clamped at zero. Clock skew between the insert and the close
// must never produce a negative duration.
func ComputeDuration(start, end time.Time) int64 {
	d := int64(end.Sub(start) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}
