package models

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TodayISO returns the current calendar day in the given location.
func TodayISO(location *time.Location) string {
	if location == nil {
		location = time.Local
	}
	return time.Now().In(location).Format(DateLayout)
}
