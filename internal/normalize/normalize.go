// Package normalize turns raw extraction payloads and manual entries into well-formed ledger events.
//
// It is the only place where untrusted record shapes are read. Normalization degrades
// instead of failing: unreadable numbers become 0 and unreadable dates become today.
// The one hard failure is a record whose type is neither a trade confirmation nor a
// daily summary.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// Normalize converts raw into a LedgerEvent. now supplies the fallback date.
func Normalize(raw model.RawRecord, now time.Time) (model.LedgerEvent, error) {
	date := Date(raw.Date, now)

	switch ParseType(raw.ImageType) {
	case model.TradeConfirmation:
		return normalizeConfirmation(raw, date), nil
	case model.DailySummary:
		return normalizeSummary(raw, date), nil
	default:
		return model.LedgerEvent{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownRecordType, raw.ImageType)
	}
}

// ParseType maps the loose type names seen in extraction output onto an EventType.
// Unknown names return the empty EventType.
func ParseType(s string) model.EventType {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	switch key {
	case "TRADE_CONFIRMATION", "CONFIRMATION", "TRADE":
		return model.TradeConfirmation
	case "DAILY_SUMMARY", "SUMMARY", "PORTFOLIO_SUMMARY":
		return model.DailySummary
	}
	return ""
}

func normalizeConfirmation(raw model.RawRecord, date string) model.LedgerEvent {
	cost := Number(raw.CostAtOpen).Abs()
	credit := Number(raw.CreditAtClose).Abs()
	changeValue := Number(raw.ChangeValue)
	changePct := Number(raw.ChangePercentage)

	// Only the P/L and percentage were captured: back out the basis from them.
	if cost.IsZero() && !changeValue.IsZero() && !changePct.IsZero() {
		cost = changeValue.Mul(hundred).Div(changePct).Abs()
		if credit.IsZero() {
			credit = cost.Add(changeValue)
		}
	}

	if changeValue.IsZero() && !cost.IsZero() && !credit.IsZero() {
		changeValue = credit.Sub(cost)
	}

	if changePct.IsZero() && cost.IsPositive() {
		changePct = changeValue.Div(cost).Mul(hundred)
	}

	return model.NewTradeConfirmation(
		date,
		Ticker(raw.Ticker),
		round(cost),
		round(credit),
		round(changeValue),
		round(changePct),
	)
}

func normalizeSummary(raw model.RawRecord, date string) model.LedgerEvent {
	balance := Number(raw.EndOfDayBalance).Abs()
	changeValue := Number(raw.ChangeValue)
	changePct := Number(raw.ChangePercentage)

	if changePct.IsZero() && !changeValue.IsZero() {
		prior := balance.Sub(changeValue)
		if prior.IsPositive() {
			changePct = changeValue.Div(prior).Mul(hundred)
		}
	}

	return model.NewDailySummary(date, round(changeValue), round(changePct), round(balance))
}

// Ticker trims and upper-cases a ticker. Anything that is not a string becomes "".
func Ticker(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

var hundred = decimal.NewFromInt(100)

// Magnitude bounds, as powers of ten, for parsed values. Anything larger cannot be a
// float64; anything smaller rounds to zero at 2dp.
const (
	maxMagnitude = 309
	minMagnitude = -20
)

// numberCleaner strips the formatting characters extraction output tends to carry.
var numberCleaner = strings.NewReplacer("$", "", ",", "", "%", "", "+", "", " ", "", "\u00a0", "", "USD", "")

// Number coerces a loosely typed value into a decimal. Missing, unparseable,
// NaN and infinite values become zero. "(12.50)" is read as -12.50.
func Number(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return fromFloat(n)
	case float32:
		return fromFloat(float64(n))
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		return fromString(n.String())
	case string:
		return fromString(n)
	default:
		return decimal.Zero
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func fromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = numberCleaner.Replace(s)
	// Some statements use the unicode minus sign.
	s = strings.ReplaceAll(s, "−", "-")
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsZero() {
		return decimal.Zero
	}
	magnitude := d.NumDigits() + int(d.Exponent())
	if magnitude > maxMagnitude || magnitude < minMagnitude {
		return decimal.Zero
	}
	if negative {
		return d.Neg()
	}
	return d
}

// round gives d at 2dp. Values that overflow float64 become 0.
func round(d decimal.Decimal) float64 {
	f := d.Round(2).InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
