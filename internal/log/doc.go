// Package log provides slog loggers that never print password material.
//
// SecureHandler wraps any slog.Handler and masks attributes before they
// are written:
//   - keys that name a password or a value derived from one
//     ("password", "hash", "suffix", "sha1", ...)
//   - values shaped like a SHA-1 digest or a range-lookup suffix
//   - authorization headers and long opaque tokens
//
// The 5-character hash prefix sent to the breach service is public and
// is left alone.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("range lookup", "prefix", prefix, "suffix", suffix)
//	// suffix=***REDACTED***
package log
