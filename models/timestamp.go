package models

import (
	"fmt"
	"time"
)

// FormatTimestamp renders t the way Korean-locale exports stamp rows and files,
// e.g. "2024. 5. 1. 오후 3:04:05".
func FormatTimestamp(t time.Time) string {
	period := "오전"
	hour := t.Hour()
	if hour >= 12 {
		period = "오후"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), period, hour, t.Minute(), t.Second())
}
