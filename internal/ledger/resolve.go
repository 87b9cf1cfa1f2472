package ledger

import "github.com/ndewijer/Trade-Journal-Backend/internal/model"

// AuthoritativeSummary returns the daily summary that decides a bucket's P/L and balance.
// When several summaries share a date, the latest inserted one wins; buckets keep
// store order, so that is the last summary in the bucket.
func AuthoritativeSummary(bucket []model.LedgerEvent) (model.LedgerEvent, bool) {
	for i := len(bucket) - 1; i >= 0; i-- {
		if bucket[i].IsSummary() {
			return bucket[i], true
		}
	}
	return model.LedgerEvent{}, false
}

// ResolveDay returns the signed dollar and percent change for one day bucket.
//
// A daily summary overrides everything else on its date: its own change value and
// percentage are returned verbatim. Otherwise the change value is the sum of the
// trade confirmations' change values and the percentage is that sum over the summed
// cost at open, or 0 when there is no cost. An empty bucket resolves to (0, 0).
func ResolveDay(bucket []model.LedgerEvent) (changeValue, changePercentage float64) {
	if summary, ok := AuthoritativeSummary(bucket); ok {
		return summary.ChangeValue, summary.ChangePercentage
	}

	var totalCost float64
	for _, e := range bucket {
		if !e.IsConfirmation() {
			continue
		}
		changeValue += e.ChangeValue
		totalCost += e.CostAtOpen
	}

	if totalCost > 0 {
		changePercentage = changeValue / totalCost * 100
	}
	return changeValue, changePercentage
}

// Resolve returns the DailyResolution for every date in events, ascending.
func Resolve(events []model.LedgerEvent) []model.DailyResolution {
	groups := GroupByDate(events)
	dates := SortedDates(groups)

	resolutions := make([]model.DailyResolution, 0, len(dates))
	for _, date := range dates {
		bucket := groups[date]
		value, pct := ResolveDay(bucket)
		_, hasSummary := AuthoritativeSummary(bucket)
		resolutions = append(resolutions, model.DailyResolution{
			Date:             date,
			ChangeValue:      value,
			ChangePercentage: pct,
			EventCount:       len(bucket),
			HasSummary:       hasSummary,
		})
	}
	return resolutions
}
