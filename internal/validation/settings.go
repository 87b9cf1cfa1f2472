package validation

import (
	"math"
	"strings"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/request"
)

// ValidateUpdateStartingCapital requires a finite, non-negative starting capital.
func ValidateUpdateStartingCapital(req request.UpdateStartingCapitalRequest) error {
	errors := make(map[string]string)

	switch {
	case req.StartingCapital == nil:
		errors["startingCapital"] = "startingCapital is required"
	case *req.StartingCapital < 0:
		errors["startingCapital"] = "startingCapital must not be negative"
	case math.IsInf(*req.StartingCapital, 0) || math.IsNaN(*req.StartingCapital):
		errors["startingCapital"] = "startingCapital must be a finite number"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateExtractionKey requires a non-blank API key.
func ValidateUpdateExtractionKey(req request.UpdateExtractionKeyRequest) error {
	if strings.TrimSpace(req.APIKey) == "" {
		return &Error{Fields: map[string]string{"apiKey": "apiKey is required"}}
	}
	return nil
}
