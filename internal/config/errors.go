package config

import "errors"

// Configuration errors returned by Config.Validate and the loader.
// Callers match them with errors.Is.
var (
	// ErrNoPassword is returned when no password source was given and
	// standard input is not a terminal to prompt on.
	ErrNoPassword = errors.New("no password given: use --password, --stdin or --input, or run in a terminal")

	// ErrConflictingPasswordSources is returned when more than one of
	// --password, --stdin and --input is used.
	ErrConflictingPasswordSources = errors.New("conflicting password sources: use only one of --password, --stdin and --input")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidRetries is returned when the retry count is negative.
	ErrInvalidRetries = errors.New("invalid retries: must be non-negative")

	// ErrInvalidCacheTTL is returned when the cache is on and its TTL is
	// not positive.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
