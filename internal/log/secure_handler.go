package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// secretKeys are attribute keys whose values are always masked.
// Password material and anything derived from it (full digests, the
// hash suffix that never leaves the process) fall in this set.
var secretKeys = map[string]bool{
	// Password material
	"password":   true,
	"passwd":     true,
	"passphrase": true,
	"pin":        true,
	"candidate":  true,
	"plaintext":  true,

	// Derived digests
	"hash":   true,
	"sha1":   true,
	"digest": true,
	"suffix": true,

	// HTTP headers
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"hibp-api-key":        true,
	"x-api-key":           true,

	// Tor control
	"control_password": true,
	"cookie_auth":      true,
}

// secretKeywords mark a key as secret when they appear anywhere in it.
// The bare word "key" is left out: "cache_key" and "prefix_key" are harmless.
var secretKeywords = []string{
	"password", "passwd", "passphrase", "secret", "token", "credential",
}

// secretPatterns flag values that look like secrets whatever their key.
var secretPatterns = []*regexp.Regexp{
	// Full SHA-1 digest (uppercase or lowercase hex)
	regexp.MustCompile(`^[0-9A-Fa-f]{40}$`),

	// SHA-1 suffix of a range lookup
	regexp.MustCompile(`^[0-9A-Fa-f]{35}$`),

	// Bearer / Basic credentials
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),

	// Long opaque tokens
	regexp.MustCompile(`^[a-zA-Z0-9]{48,}$`),
}

// MaskValue replaces every redacted value.
const MaskValue = "***REDACTED***"

// SecureHandler wraps an slog.Handler and masks attribute values that
// carry password material before they reach the wrapped handler.
// Records pass through unchanged otherwise, so any handler (text, JSON)
// and any slog consumer (tornago included) can sit behind it.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler wraps handler. A nil handler falls back to
// slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and forwards it.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(redact(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a handler carrying the masked attrs.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = redact(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup returns a handler scoped to the named group.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// redact masks a single attribute, descending into groups.
func redact(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, ga := range group {
			masked[i] = redact(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if isSecretKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}
	if a.Value.Kind() == slog.KindString && isSecretValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	if secretKeys[key] {
		return true
	}
	for _, kw := range secretKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

func isSecretValue(value string) bool {
	for _, p := range secretPatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

// NewSecureLogger returns a text logger writing to w behind a SecureHandler.
// The level is Debug when verbose is set and Warn otherwise.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

// Discard returns a logger that drops everything. Components use it as
// their default when the caller provides no logger.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
