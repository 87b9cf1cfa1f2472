package ledger

import (
	"math"

	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// Project replays every date's resolved percentage as compound growth on startingAmount.
//
// Summary dates use the summary's own percentage, confirmation-only dates the
// cost-weighted one. A negative, NaN or infinite starting amount yields an all-zero
// projection. TotalPercentage is 0 when startingAmount is 0.
func Project(events []model.LedgerEvent, startingAmount float64) model.Projection {
	if startingAmount < 0 || math.IsNaN(startingAmount) || math.IsInf(startingAmount, 0) {
		return model.Projection{}
	}

	groups := GroupByDate(events)
	balance := startingAmount
	for _, date := range SortedDates(groups) {
		_, pct := ResolveDay(groups[date])
		balance *= 1 + pct/100
	}

	projection := model.Projection{
		StartingAmount: startingAmount,
		FinalBalance:   balance,
		TotalProfit:    balance - startingAmount,
	}
	if startingAmount != 0 {
		projection.TotalPercentage = projection.TotalProfit / startingAmount * 100
	}
	return projection
}
