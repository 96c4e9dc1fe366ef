package auction

import (
	"testing"
	"time"
)

func TestStatusOf(t *testing.T) {
	end := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"well before end", end.Add(-time.Hour), StatusActive},
		{"one second before end", end.Add(-time.Second), StatusActive},
		{"exactly at end", end, StatusEnded},
		{"one second after end", end.Add(time.Second), StatusEnded},
		{"long after end", end.Add(240 * time.Hour), StatusEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(end, tt.now); got != tt.want {
				t.Errorf("StatusOf(%v, %v) = %q, want %q", end, tt.now, got, tt.want)
			}
		})
	}
}

func TestStatusOfIsPure(t *testing.T) {
	// Same inputs always give the same answer; deriving status twice
	// must not flip it.
	end := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := end.Add(-time.Minute)
	first := StatusOf(end, now)
	second := StatusOf(end, now)
	if first != second {
		t.Fatalf("status changed between evaluations: %q then %q", first, second)
	}
}
