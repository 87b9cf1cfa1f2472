package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
	"github.com/ndewijer/Trade-Journal-Backend/internal/repository"
)

// EventBuilder provides a fluent interface for creating test ledger events.
// Events are written straight to the store, bypassing normalization, so tests
// control every field.
//
// Example usage:
//
//	// Trade confirmation with defaults
//	event := testutil.NewConfirmation().Build(t, db)
//
//	// Daily summary that overrides the day's trades
//	event := testutil.NewSummary().
//	    WithDate("2024-01-02").
//	    WithChange(25, 2.5).
//	    WithBalance(1025).
//	    Build(t, db)
type EventBuilder struct {
	event model.LedgerEvent
}

// NewConfirmation creates an EventBuilder for a trade confirmation with sensible defaults.
func NewConfirmation() *EventBuilder {
	return &EventBuilder{event: model.LedgerEvent{
		ID:               MakeID(),
		Date:             "2024-01-02",
		Type:             model.TradeConfirmation,
		Ticker:           MakeTicker(),
		CostAtOpen:       100,
		CreditAtClose:    110,
		ChangeValue:      10,
		ChangePercentage: 10,
		CreatedAt:        time.Now().UTC(),
	}}
}

// NewSummary creates an EventBuilder for a daily summary with sensible defaults.
func NewSummary() *EventBuilder {
	return &EventBuilder{event: model.LedgerEvent{
		ID:               MakeID(),
		Date:             "2024-01-02",
		Type:             model.DailySummary,
		ChangeValue:      10,
		ChangePercentage: 1,
		EndOfDayBalance:  1010,
		CreatedAt:        time.Now().UTC(),
	}}
}

// WithID sets a custom ID.
func (b *EventBuilder) WithID(id string) *EventBuilder {
	b.event.ID = id
	return b
}

// WithDate sets the trading date (YYYY-MM-DD).
func (b *EventBuilder) WithDate(date string) *EventBuilder {
	b.event.Date = date
	return b
}

// WithTicker sets the ticker of a trade confirmation.
func (b *EventBuilder) WithTicker(ticker string) *EventBuilder {
	b.event.Ticker = ticker
	return b
}

// WithTrade sets the open cost and close credit of a trade confirmation.
func (b *EventBuilder) WithTrade(cost, credit float64) *EventBuilder {
	b.event.CostAtOpen = cost
	b.event.CreditAtClose = credit
	return b
}

// WithChange sets the change value and percentage.
func (b *EventBuilder) WithChange(value, percentage float64) *EventBuilder {
	b.event.ChangeValue = value
	b.event.ChangePercentage = percentage
	return b
}

// WithBalance sets the end-of-day balance of a daily summary.
func (b *EventBuilder) WithBalance(balance float64) *EventBuilder {
	b.event.EndOfDayBalance = balance
	return b
}

// WithCreatedAt sets the insertion timestamp used to order events within a date.
func (b *EventBuilder) WithCreatedAt(createdAt time.Time) *EventBuilder {
	b.event.CreatedAt = createdAt
	return b
}

// Event returns the event without persisting it.
func (b *EventBuilder) Event() model.LedgerEvent {
	return b.event
}

// Build inserts the event and returns it.
func (b *EventBuilder) Build(t *testing.T, db *sql.DB) model.LedgerEvent {
	t.Helper()

	event := b.event
	if err := repository.NewEventRepository(db).InsertEvent(context.Background(), &event); err != nil {
		t.Fatalf("Failed to create ledger event: %v", err)
	}
	return event
}
