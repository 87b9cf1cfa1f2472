package repository

import (
	"fmt"
	"time"
)

// timestampLayout keeps a fixed number of fractional digits so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// SQLite may hand DATE columns back either way depending on the driver's type detection.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// formatTimestamp renders t in UTC with timestampLayout.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// normalizeDate turns whatever the driver returned for a DATE column back into YYYY-MM-DD.
func normalizeDate(str string) (string, error) {
	t, err := ParseTime(str)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}
