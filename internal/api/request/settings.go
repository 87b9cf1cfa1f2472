package request

// UpdateStartingCapitalRequest sets the starting capital used by stats and history.
type UpdateStartingCapitalRequest struct {
	StartingCapital *float64 `json:"startingCapital"`
}

// UpdateExtractionKeyRequest stores the extraction service API key.
type UpdateExtractionKeyRequest struct {
	APIKey string `json:"apiKey"`
}
