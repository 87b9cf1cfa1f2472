package ledger

import "github.com/ndewijer/Trade-Journal-Backend/internal/model"

// History annotates every event with the running account balance after its date.
//
// Dates are walked in ascending order starting from startingBalance. A date with a
// daily summary snaps the balance to that summary's end-of-day balance, which stops
// drift from earlier confirmation-only days. Any other date adds its resolved change
// value. All events of a date share the same post-day balance.
//
// The result is most recent first: dates descending, and within a date the latest
// inserted event first.
func History(events []model.LedgerEvent, startingBalance float64) []model.HistoryEntry {
	groups := GroupByDate(events)
	dates := SortedDates(groups)

	balances := make(map[string]float64, len(dates))
	running := startingBalance
	for _, date := range dates {
		bucket := groups[date]
		if summary, ok := AuthoritativeSummary(bucket); ok {
			running = summary.EndOfDayBalance
		} else {
			value, _ := ResolveDay(bucket)
			running += value
		}
		balances[date] = running
	}

	entries := make([]model.HistoryEntry, 0, len(events))
	for i := len(dates) - 1; i >= 0; i-- {
		bucket := groups[dates[i]]
		for j := len(bucket) - 1; j >= 0; j-- {
			entries = append(entries, model.HistoryEntry{
				Event:          bucket[j],
				RunningBalance: balances[dates[i]],
			})
		}
	}
	return entries
}
