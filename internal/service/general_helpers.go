package service

import (
	"math"

	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// RoundingPrecision is the factor used to round monetary values and percentages to two decimals.
const RoundingPrecision = 100

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// The aggregation engine works on unrounded values; rounding only happens on the way out.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

func roundStats(s model.Stats) model.Stats {
	s.StartingCapital = round(s.StartingCapital)
	s.TotalRealizedPnl = round(s.TotalRealizedPnl)
	s.CurrentBalance = round(s.CurrentBalance)
	s.WinRate = round(s.WinRate)
	return s
}

func roundProjection(p model.Projection) model.Projection {
	p.StartingAmount = round(p.StartingAmount)
	p.FinalBalance = round(p.FinalBalance)
	p.TotalProfit = round(p.TotalProfit)
	p.TotalPercentage = round(p.TotalPercentage)
	return p
}

func roundHistory(entries []model.HistoryEntry) []model.HistoryEntry {
	for i := range entries {
		entries[i].RunningBalance = round(entries[i].RunningBalance)
	}
	return entries
}

func roundCalendar(days []model.DailyResolution) []model.DailyResolution {
	for i := range days {
		days[i].ChangeValue = round(days[i].ChangeValue)
		days[i].ChangePercentage = round(days[i].ChangePercentage)
	}
	return days
}
