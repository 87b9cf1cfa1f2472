package model

import "time"

// StatsSnapshot is a persisted copy of Stats taken at a point in time,
// either by the scheduler or on request.
type StatsSnapshot struct {
	ID               string    `json:"id"`
	TakenAt          time.Time `json:"takenAt"`
	StartingCapital  float64   `json:"startingCapital"`
	TotalRealizedPnl float64   `json:"totalRealizedPnl"`
	CurrentBalance   float64   `json:"currentBalance"`
	WinRate          float64   `json:"winRate"`
	TradingDays      int       `json:"tradingDays"`
	EventCount       int       `json:"eventCount"`
}
