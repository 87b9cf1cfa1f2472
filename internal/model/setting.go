package model

import "time"

// Setting keys stored in the system_setting table.
const (
	SettingStartingCapital = "starting_capital"
	SettingExtractionKey   = "extraction_key"
)

// Setting is a single key/value row.
type Setting struct {
	ID        string
	Key       string
	Value     string
	UpdatedAt time.Time
}

// SettingsResponse is the public view of the settings. Secrets are reported by presence only.
type SettingsResponse struct {
	StartingCapital         float64 `json:"startingCapital"`
	ExtractionKeyConfigured bool    `json:"extractionKeyConfigured"`
	ExtractionKeySource     string  `json:"extractionKeySource"`
	EncryptionEnabled       bool    `json:"encryptionEnabled"`
}
