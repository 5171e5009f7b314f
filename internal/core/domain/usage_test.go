package domain

import (
	"testing"
	"time"
)

func TestComputeDuration_WholeSeconds(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int64
	}{
		{"exact", start.Add(125 * time.Second), 125},
		{"floors partial second", start.Add(125*time.Second + 900*time.Millisecond), 125},
		{"zero", start, 0},
		{"clamps negative", start.Add(-30 * time.Second), 0},
		{"long session", start.Add(2 * time.Hour), 7200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeDuration(start, tc.end); got != tc.want {
				t.Fatalf("ComputeDuration = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestUsageSession_Closed(t *testing.T) {
	s := &UsageSession{SessionStart: time.Now()}
	if s.Closed() {
		t.Fatalf("open session reported closed")
	}
	end := s.SessionStart.Add(time.Minute)
	s.SessionEnd = &end
	if !s.Closed() {
		t.Fatalf("closed session reported open")
	}
}
