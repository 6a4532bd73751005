package services

import (
	"testing"

	"github.com/LordDeatHunter/Movienite/models"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{models.StatusUpcoming, models.StatusStreaming, models.StatusWatched} {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{"", "done", "WATCHED", "watched "} {
		if ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = true, want false", status)
		}
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{models.StatusUpcoming, models.StatusStreaming},
		{models.StatusStreaming, models.StatusWatched},
		{models.StatusWatched, models.StatusUpcoming},
		// Out-of-vocabulary values cycle as if they were upcoming
		{"", models.StatusStreaming},
		{"legacy", models.StatusStreaming},
	}

	for _, tt := range tests {
		if got := NextStatus(tt.current); got != tt.want {
			t.Errorf("NextStatus(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestNextStatusCycleReturnsToStart(t *testing.T) {
	for _, start := range []string{models.StatusUpcoming, models.StatusStreaming, models.StatusWatched} {
		status := start
		for i := 0; i < 3; i++ {
			status = NextStatus(status)
		}
		if status != start {
			t.Errorf("three cycles from %q ended at %q", start, status)
		}
	}
}
