package model

import "time"

// EventType is the discriminant of a LedgerEvent.
type EventType string

const (
	// TradeConfirmation is a single closed trade: what it cost to open and what it returned at close.
	TradeConfirmation EventType = "TRADE_CONFIRMATION"
	// DailySummary is a broker's end-of-day account summary. It is authoritative for its date.
	DailySummary EventType = "DAILY_SUMMARY"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	return t == TradeConfirmation || t == DailySummary
}

// LedgerEvent is one persisted journal record.
// Events are immutable once stored: they are only ever inserted or deleted as a whole.
//
// Ticker, CostAtOpen and CreditAtClose are only meaningful for trade confirmations,
// EndOfDayBalance only for daily summaries. Build events with NewTradeConfirmation
// or NewDailySummary rather than by hand.
type LedgerEvent struct {
	ID               string    `json:"id"`
	Date             string    `json:"date"`
	Type             EventType `json:"type"`
	Ticker           string    `json:"ticker,omitempty"`
	CostAtOpen       float64   `json:"costAtOpen"`
	CreditAtClose    float64   `json:"creditAtClose"`
	ChangeValue      float64   `json:"changeValue"`
	ChangePercentage float64   `json:"changePercentage"`
	EndOfDayBalance  float64   `json:"endOfDayBalance"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewTradeConfirmation builds a trade confirmation event. Amounts are expected to be
// normalized already (see the normalize package).
func NewTradeConfirmation(date, ticker string, costAtOpen, creditAtClose, changeValue, changePercentage float64) LedgerEvent {
	return LedgerEvent{
		Date:             date,
		Type:             TradeConfirmation,
		Ticker:           ticker,
		CostAtOpen:       costAtOpen,
		CreditAtClose:    creditAtClose,
		ChangeValue:      changeValue,
		ChangePercentage: changePercentage,
	}
}

// NewDailySummary builds a daily summary event.
func NewDailySummary(date string, changeValue, changePercentage, endOfDayBalance float64) LedgerEvent {
	return LedgerEvent{
		Date:             date,
		Type:             DailySummary,
		ChangeValue:      changeValue,
		ChangePercentage: changePercentage,
		EndOfDayBalance:  endOfDayBalance,
	}
}

// IsSummary reports whether the event is a daily summary.
func (e LedgerEvent) IsSummary() bool {
	return e.Type == DailySummary
}

// IsConfirmation reports whether the event is a trade confirmation.
func (e LedgerEvent) IsConfirmation() bool {
	return e.Type == TradeConfirmation
}

// RawRecord is the loosely typed payload produced by the extraction service or a manual entry.
// Numeric fields may hold float64, json.Number or formatted strings such as "$1,234.50" or "-4.2%",
// and any of them may be missing. RawRecord is only consumed by normalize.Normalize.
type RawRecord struct {
	ImageType        string `json:"imageType"`
	Date             any    `json:"date,omitempty"`
	Ticker           any    `json:"ticker,omitempty"`
	CostAtOpen       any    `json:"costAtOpen,omitempty"`
	CreditAtClose    any    `json:"creditAtClose,omitempty"`
	ChangeValue      any    `json:"changeValue,omitempty"`
	ChangePercentage any    `json:"changePercentage,omitempty"`
	EndOfDayBalance  any    `json:"endOfDayBalance,omitempty"`
}
