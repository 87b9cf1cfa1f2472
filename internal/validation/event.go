package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
	"github.com/ndewijer/Trade-Journal-Backend/internal/normalize"
)

// ValidateCreateEvent validates a manual ledger entry.
//
// Required fields:
//   - type: a trade confirmation or daily summary name
//   - ticker: required for trade confirmations
//
// date is optional but, when given, must be in YYYY-MM-DD format.
// Amounts are left to normalization.
func ValidateCreateEvent(req request.CreateEventRequest) error {
	errors := make(map[string]string)

	eventType := normalize.ParseType(req.Type)
	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !eventType.Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			errors["date"] = "date must be in YYYY-MM-DD format"
		}
	}

	if eventType == model.TradeConfirmation && strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required for trade confirmations"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
