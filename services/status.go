package services

import "github.com/LordDeatHunter/Movienite/models"

// ValidStatus reports whether s is one of the three movie statuses.
func ValidStatus(s string) bool {
	switch s {
	case models.StatusUpcoming, models.StatusStreaming, models.StatusWatched:
		return true
	}
	return false
}

// NextStatus advances the status cycle
// upcoming -> streaming -> watched -> upcoming. Anything outside the
// vocabulary (legacy rows) cycles as if it were upcoming.
func NextStatus(s string) string {
	switch s {
	case models.StatusStreaming:
		return models.StatusWatched
	case models.StatusWatched:
		return models.StatusUpcoming
	default:
		return models.StatusStreaming
	}
}
