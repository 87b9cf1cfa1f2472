package normalize

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when reading a date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006/01/02",
}

// Date returns v as a YYYY-MM-DD string. Values that are not strings, cannot be
// parsed or fall outside [1970-01-01, now + 1 year] are replaced by now's date.
func Date(v any, now time.Time) string {
	today := now.Format("2006-01-02")

	s, ok := v.(string)
	if !ok {
		return today
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return today
	}

	lowest := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	highest := now.UTC().AddDate(1, 0, 0)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Before(lowest) || t.After(highest) {
			return today
		}
		return t.Format("2006-01-02")
	}
	return today
}
