package ledger

import "github.com/ndewijer/Trade-Journal-Backend/internal/model"

// Summarize computes the account-wide totals.
//
// TotalRealizedPnl sums every date's resolved change value. CurrentBalance is the
// end-of-day balance of the most recent daily summary (same-date ties go to the
// latest inserted) or, without any summary, startingCapital plus TotalRealizedPnl.
// WinRate is the share of dates with a strictly positive resolved change, in percent.
func Summarize(events []model.LedgerEvent, startingCapital float64) model.Stats {
	groups := GroupByDate(events)
	dates := SortedDates(groups)

	stats := model.Stats{
		StartingCapital: startingCapital,
		TradingDays:     len(dates),
		EventCount:      len(events),
	}

	var latestSummary *model.LedgerEvent
	for _, date := range dates {
		bucket := groups[date]
		value, _ := ResolveDay(bucket)
		stats.TotalRealizedPnl += value
		if value > 0 {
			stats.WinningDays++
		}
		if summary, ok := AuthoritativeSummary(bucket); ok {
			latestSummary = &summary
		}
	}

	if latestSummary != nil {
		stats.CurrentBalance = latestSummary.EndOfDayBalance
	} else {
		stats.CurrentBalance = startingCapital + stats.TotalRealizedPnl
	}

	stats.WinRate = WinRate(stats.WinningDays, stats.TradingDays)
	return stats
}

// WinRate returns winning over total days as a percentage, 0 when there are no days.
func WinRate(winningDays, tradingDays int) float64 {
	if tradingDays == 0 {
		return 0
	}
	return float64(winningDays) / float64(tradingDays) * 100
}
