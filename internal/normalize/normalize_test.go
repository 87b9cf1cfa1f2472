package normalize_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
	"github.com/ndewijer/Trade-Journal-Backend/internal/normalize"
)

var now = time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"json number", json.Number("-3.25"), -3.25},
		{"currency string", "$1,234.56", 1234.56},
		{"percent string", "-4.2%", -4.2},
		{"explicit plus", "+10.00", 10},
		{"accounting negative", "($12.50)", -12.5},
		{"unicode minus", "−8.1", -8.1},
		{"garbage", "n/a", 0},
		{"empty", "   ", 0},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(-1), 0},
		{"unsupported type", []int{1}, 0},
		{"exponent", "1.5e3", 1500},
		{"exponent beyond float64", "1e400", 0},
		{"negative exponent beyond float64", "-1e400", 0},
		{"vanishing exponent", "1e-400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.Number(tt.in).InexactFloat64()
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"iso", "2024-01-02", "2024-01-02"},
		{"rfc3339", "2024-01-02T09:30:00Z", "2024-01-02"},
		{"us slashes", "01/02/2024", "2024-01-02"},
		{"us short", "1/2/2024", "2024-01-02"},
		{"month name", "Jan 2, 2024", "2024-01-02"},
		{"long month name", "January 2, 2024", "2024-01-02"},
		{"padded", "  2024-03-04 ", "2024-03-04"},
		{"missing", nil, "2024-06-14"},
		{"not a string", 20240102, "2024-06-14"},
		{"garbage", "yesterday", "2024-06-14"},
		{"impossible day", "2024-02-31", "2024-06-14"},
		{"too old", "1969-12-31", "2024-06-14"},
		{"too far ahead", "2030-01-01", "2024-06-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Date(tt.in, now))
		})
	}
}

func TestParseType(t *testing.T) {
	assert.Equal(t, model.TradeConfirmation, normalize.ParseType("TRADE_CONFIRMATION"))
	assert.Equal(t, model.TradeConfirmation, normalize.ParseType(" trade confirmation "))
	assert.Equal(t, model.DailySummary, normalize.ParseType("daily-summary"))
	assert.Equal(t, model.EventType(""), normalize.ParseType("receipt"))
}

func TestNormalize(t *testing.T) {
	t.Run("trade confirmation with every field", func(t *testing.T) {
		raw := model.RawRecord{
			ImageType:        "TRADE_CONFIRMATION",
			Date:             "2024-01-01",
			Ticker:           " aapl ",
			CostAtOpen:       "$100.00",
			CreditAtClose:    "110",
			ChangeValue:      "+10",
			ChangePercentage: "10%",
		}

		e, err := normalize.Normalize(raw, now)
		require.NoError(t, err)

		assert.Equal(t, model.TradeConfirmation, e.Type)
		assert.Equal(t, "2024-01-01", e.Date)
		assert.Equal(t, "AAPL", e.Ticker)
		assert.Equal(t, 100.0, e.CostAtOpen)
		assert.Equal(t, 110.0, e.CreditAtClose)
		assert.Equal(t, 10.0, e.ChangeValue)
		assert.Equal(t, 10.0, e.ChangePercentage)
	})

	t.Run("cost and credit are stored as absolute values", func(t *testing.T) {
		raw := model.RawRecord{
			ImageType:        "TRADE_CONFIRMATION",
			CostAtOpen:       -200.0,
			CreditAtClose:    "-180",
			ChangeValue:      -20.0,
			ChangePercentage: -10.0,
		}

		e, err := normalize.Normalize(raw, now)
		require.NoError(t, err)
		assert.Equal(t, 200.0, e.CostAtOpen)
		assert.Equal(t, 180.0, e.CreditAtClose)
		assert.Equal(t, -20.0, e.ChangeValue)
	})

	t.Run("derives change from cost and credit", func(t *testing.T) {
		raw := model.RawRecord{
			ImageType:     "TRADE_CONFIRMATION",
			CostAtOpen:    150.0,
			CreditAtClose: 120.0,
		}

		e, err := normalize.Normalize(raw, now)
		require.NoError(t, err)
		assert.Equal(t, -30.0, e.ChangeValue)
		assert.Equal(t, -20.0, e.ChangePercentage)
	})

	t.Run("derives cost from change value and percentage", func(t *testing.T) {
		raw := model.RawRecord{
			ImageType:        "TRADE_CONFIRMATION",
			ChangeValue:      "-15",
			ChangePercentage: "-7.5%",
		}

		e, err := normalize.Normalize(raw, now)
		require.NoError(t, err)
		assert.Equal(t, 200.0, e.CostAtOpen)
		assert.Equal(t, 185.0, e.CreditAtClose)
		assert.Equal(t, -15.0, e.ChangeValue)
		assert.Equal(t, -7.5, e.ChangePercentage)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		raw := model.RawRecord{
			ImageType:     "TRADE_CONFIRMATION",
			CostAtOpen:    300.0,
			CreditAtClose: 310.0,
		}

		e, err := normalize.Normalize(raw, now)
		require.NoError(t, err)
		assert.Equal(t, 10.0, e.ChangeValue)
		assert.Equal(t, 3.33, e.ChangePercentage)
	})

	t.Run("missing ticker becomes empty", func(t *testing.T) {
		e, err := normalize.Normalize(model.RawRecord{ImageType: "TRADE_CONFIRMATION"}, now)
		require.NoError(t, err)
		assert.Equal(t, "", e.Ticker)
		assert.Equal(t, "2024-06-14", e.Date)
	})

	t.Run("daily summary", func(t *testing.T) {
		raw := model.RawRecord{
			ImageType:        "DAILY_SUMMARY",
			Date:             "01/02/2024",
			ChangeValue:      "-$20.00",
			ChangePercentage: "-4%",
			EndOfDayBalance:  "$480.00",
			Ticker:           "IGNORED",
		}

		e, err := normalize.Normalize(raw, now)
		require.NoError(t, err)
		assert.Equal(t, model.DailySummary, e.Type)
		assert.Equal(t, "2024-01-02", e.Date)
		assert.Equal(t, -20.0, e.ChangeValue)
		assert.Equal(t, -4.0, e.ChangePercentage)
		assert.Equal(t, 480.0, e.EndOfDayBalance)
		assert.Equal(t, "", e.Ticker)
	})

	t.Run("daily summary derives percentage from prior balance", func(t *testing.T) {
		raw := model.RawRecord{
			ImageType:       "DAILY_SUMMARY",
			ChangeValue:     25.0,
			EndOfDayBalance: 525.0,
		}

		e, err := normalize.Normalize(raw, now)
		require.NoError(t, err)
		assert.Equal(t, 5.0, e.ChangePercentage)
	})

	t.Run("vanishing percentage does not divide by zero", func(t *testing.T) {
		for _, pct := range []string{"0.00000000000000000001", "1e-30", "1e-400"} {
			raw := model.RawRecord{
				ImageType:        "TRADE_CONFIRMATION",
				ChangeValue:      "10",
				ChangePercentage: pct,
			}

			var (
				e   model.LedgerEvent
				err error
			)
			require.NotPanics(t, func() { e, err = normalize.Normalize(raw, now) }, pct)
			require.NoError(t, err)
			assert.Equal(t, 10.0, e.ChangeValue, pct)
			assertFinite(t, e)
		}
	})

	t.Run("values beyond float64 become zero", func(t *testing.T) {
		e, err := normalize.Normalize(model.RawRecord{
			ImageType:       "DAILY_SUMMARY",
			ChangeValue:     "1e400",
			EndOfDayBalance: "100",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, e.ChangeValue)
		assert.Equal(t, 100.0, e.EndOfDayBalance)
		assertFinite(t, e)
	})

	t.Run("derived values that overflow become zero", func(t *testing.T) {
		e, err := normalize.Normalize(model.RawRecord{
			ImageType:        "TRADE_CONFIRMATION",
			ChangeValue:      "1e308",
			ChangePercentage: "0.01",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, e.CostAtOpen)
		assert.Equal(t, 0.0, e.CreditAtClose)
		assertFinite(t, e)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := normalize.Normalize(model.RawRecord{ImageType: "RECEIPT"}, now)
		assert.ErrorIs(t, err, apperrors.ErrUnknownRecordType)
	})

	t.Run("missing type is rejected", func(t *testing.T) {
		_, err := normalize.Normalize(model.RawRecord{}, now)
		assert.ErrorIs(t, err, apperrors.ErrUnknownRecordType)
	})
}

func assertFinite(t *testing.T, e model.LedgerEvent) {
	t.Helper()
	for name, v := range map[string]float64{
		"costAtOpen":       e.CostAtOpen,
		"creditAtClose":    e.CreditAtClose,
		"changeValue":      e.ChangeValue,
		"changePercentage": e.ChangePercentage,
		"endOfDayBalance":  e.EndOfDayBalance,
	} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s is not finite: %v", name, v)
	}
}
