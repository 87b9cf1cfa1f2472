package request

// CreateEventRequest is a manual ledger entry. Values go through the same
// normalization as extracted records, so amounts may be numbers or formatted strings.
type CreateEventRequest struct {
	Type             string `json:"type"`
	Date             string `json:"date"`
	Ticker           string `json:"ticker,omitempty"`
	CostAtOpen       any    `json:"costAtOpen,omitempty"`
	CreditAtClose    any    `json:"creditAtClose,omitempty"`
	ChangeValue      any    `json:"changeValue,omitempty"`
	ChangePercentage any    `json:"changePercentage,omitempty"`
	EndOfDayBalance  any    `json:"endOfDayBalance,omitempty"`
}
