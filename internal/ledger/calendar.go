package ledger

import (
	"strings"

	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// Calendar returns the resolved P/L of every date with events, ascending.
// A non-empty month (YYYY-MM) restricts the result to that month; dates are
// resolved before filtering, so the figures match every other view.
func Calendar(events []model.LedgerEvent, month string) []model.DailyResolution {
	resolutions := Resolve(events)
	if month == "" {
		return resolutions
	}

	filtered := make([]model.DailyResolution, 0, len(resolutions))
	for _, r := range resolutions {
		if strings.HasPrefix(r.Date, month+"-") {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
