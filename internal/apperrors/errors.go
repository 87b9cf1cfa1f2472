package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrEventNotFound indicates that a ledger event with the given ID does not exist.
	ErrEventNotFound = errors.New("ledger event not found")

	// ErrSettingNotFound indicates that a setting key has never been written.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrUnknownRecordType indicates that an extracted or submitted record carries
	// neither TRADE_CONFIRMATION nor DAILY_SUMMARY as its type.
	ErrUnknownRecordType = errors.New("unknown record type")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidStartingCapital indicates a starting capital that is negative or not a number.
	ErrInvalidStartingCapital = errors.New("starting capital must be a non-negative number")

	// ErrInvalidMonth indicates a month filter that is not in YYYY-MM format.
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

	// ErrEncryptionKeyMissing indicates that a secret cannot be stored because
	// no encryption key is configured.
	ErrEncryptionKeyMissing = errors.New("encryption key is not configured")

	// ErrNoImages indicates an upload request without any image parts.
	ErrNoImages = errors.New("no images provided")
)

// Extraction errors are returned by the image extraction client.
var (
	// ErrExtractionUnavailable indicates that the extraction service could not be reached
	// or has no API key configured.
	ErrExtractionUnavailable = errors.New("extraction service unavailable")

	// ErrEmptyExtraction indicates that the extraction service answered without a usable record.
	ErrEmptyExtraction = errors.New("extraction returned no record")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveEvents   = errors.New("failed to retrieve ledger events")
	ErrFailedToRetrieveEvent    = errors.New("failed to retrieve ledger event")
	ErrFailedToCreateEvent      = errors.New("failed to create ledger event")
	ErrFailedToDeleteEvent      = errors.New("failed to delete ledger event")
	ErrFailedToRetrieveSettings = errors.New("failed to retrieve settings")
	ErrFailedToUpdateSettings   = errors.New("failed to update settings")
	ErrFailedToRetrieveSnapshot = errors.New("failed to retrieve snapshots")
	ErrFailedToTakeSnapshot     = errors.New("failed to take snapshot")
	ErrFailedToGetVersionInfo   = errors.New("failed to get version information")
)
