package ui

import "time"

func historyAnchor() time.Time {
	return time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
}
