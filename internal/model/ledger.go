package model

// DailyResolution is the single signed P/L attributed to one calendar date
// after summary precedence has been applied.
type DailyResolution struct {
	Date             string  `json:"date"`
	ChangeValue      float64 `json:"changeValue"`
	ChangePercentage float64 `json:"changePercentage"`
	EventCount       int     `json:"eventCount"`
	HasSummary       bool    `json:"hasSummary"`
}

// HistoryEntry is an event annotated with the account balance after its whole date was applied.
type HistoryEntry struct {
	Event          LedgerEvent `json:"event"`
	RunningBalance float64     `json:"runningBalance"`
}

// Projection is the result of replaying historical daily percentages from a hypothetical starting amount.
type Projection struct {
	StartingAmount  float64 `json:"startingAmount"`
	FinalBalance    float64 `json:"finalBalance"`
	TotalProfit     float64 `json:"totalProfit"`
	TotalPercentage float64 `json:"totalPercentage"`
}

// Stats are the account-wide aggregates shown on the dashboard.
type Stats struct {
	StartingCapital  float64 `json:"startingCapital"`
	TotalRealizedPnl float64 `json:"totalRealizedPnl"`
	CurrentBalance   float64 `json:"currentBalance"`
	WinRate          float64 `json:"winRate"`
	TradingDays      int     `json:"tradingDays"`
	WinningDays      int     `json:"winningDays"`
	EventCount       int     `json:"eventCount"`
}

// Dashboard bundles every view computed by a single recompute call.
type Dashboard struct {
	Stats      Stats             `json:"stats"`
	History    []HistoryEntry    `json:"history"`
	Calendar   []DailyResolution `json:"calendar"`
	Projection Projection        `json:"projection"`
}
