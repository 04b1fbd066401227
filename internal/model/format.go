package model

import "fmt"

// FormatDuration renders seconds the way task cards show time spent:
// "1h 5m", "3m 2s" or "9s".
func FormatDuration(seconds int64) string {
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hrs > 0:
		return fmt.Sprintf("%dh %dm", hrs, mins)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
