package ledger

import (
	"sort"

	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// GroupByDate partitions events into day buckets keyed by date.
// Events keep their relative input order inside a bucket. Map iteration order
// carries no meaning; use SortedDates for chronological traversal.
func GroupByDate(events []model.LedgerEvent) map[string][]model.LedgerEvent {
	groups := make(map[string][]model.LedgerEvent)
	for _, e := range events {
		groups[e.Date] = append(groups[e.Date], e)
	}
	return groups
}

// SortedDates returns the bucket dates in ascending calendar order.
// Dates are normalized YYYY-MM-DD strings, so lexical order is calendar order.
func SortedDates(groups map[string][]model.LedgerEvent) []string {
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
