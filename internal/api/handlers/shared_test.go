package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trade-Journal-Backend/internal/testutil"
)

// TestRespondJSON tests the respondJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// respondJSON is unexported.
func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code correctly", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, http.StatusOK, map[string]string{"message": "success"})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
		if !strings.Contains(w.Body.String(), `"message":"success"`) {
			t.Errorf("Unexpected body %s", w.Body.String())
		}
	})

	t.Run("handles nil data without error", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, http.StatusNoContent, nil)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("handles un-encodable data gracefully", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded; should not panic, just log the error
		respondJSON(w, http.StatusOK, map[string]interface{}{"channel": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestParseJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/settings/extraction-key",
			map[string]string{"apiKey": "secret"})

		got, err := parseJSON[request.UpdateExtractionKeyRequest](req)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.APIKey != "secret" {
			t.Errorf("Expected apiKey 'secret', got %q", got.APIKey)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/settings/extraction-key",
			map[string]string{"key": "secret"})

		if _, err := parseJSON[request.UpdateExtractionKeyRequest](req); err == nil {
			t.Error("Expected error for unknown field")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/ledger/event", strings.NewReader("{"))

		if _, err := parseJSON[request.CreateEventRequest](req); err == nil {
			t.Error("Expected error for malformed body")
		}
	})
}

func TestParseOptionalAmount(t *testing.T) {
	tests := []struct {
		name    string
		query   map[string]string
		want    *float64
		wantErr bool
	}{
		{"missing", nil, nil, false},
		{"number", map[string]string{"startingCapital": "1500.5"}, ptr(1500.5), false},
		{"zero", map[string]string{"startingCapital": "0"}, ptr(0), false},
		{"negative", map[string]string{"startingCapital": "-1"}, nil, true},
		{"garbage", map[string]string{"startingCapital": "lots"}, nil, true},
		{"NaN", map[string]string{"startingCapital": "NaN"}, nil, true},
		{"infinity", map[string]string{"startingCapital": "Inf"}, nil, true},
		{"out of range", map[string]string{"startingCapital": "1e999"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/ledger/stats", tt.query)

			got, err := parseOptionalAmount(req, "startingCapital")
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Expected nil, got %v", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("Expected %v, got %v", *tt.want, got)
			}
		})
	}
}

func TestProjectionAmount(t *testing.T) {
	tests := map[string]float64{
		"1000": 1000,
		"-50":  -50,
		"abc":  0,
		"":     0,
		"NaN":  0,
		"+Inf": 0,
	}

	for raw, want := range tests {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/ledger/projection", map[string]string{"amount": raw})
		if got := projectionAmount(req); got != want {
			t.Errorf("projectionAmount(%q) = %v, want %v", raw, got, want)
		}
	}
}

func ptr(f float64) *float64 { return &f }
