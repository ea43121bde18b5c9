package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pwcheck"

	// DefaultBreachEndpoint is the k-anonymity range API of HaveIBeenPwned.
	DefaultBreachEndpoint = "https://api.pwnedpasswords.com/range/"

	// DefaultTimeout bounds each breach request. Range responses are a few
	// hundred kilobytes at most.
	DefaultTimeout = 10 * time.Second

	// DefaultRetries is zero: a failed lookup is reported, not retried,
	// unless the user asks for retries.
	DefaultRetries = 0

	// DefaultCacheTTL is how long a cached range response stays fresh.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultBatchSize is the number of passwords analyzed concurrently in
	// batch mode.
	DefaultBatchSize = 4

	// DefaultTorProxyAddress is the standard Tor SOCKS5 proxy address.
	DefaultTorProxyAddress = "127.0.0.1:9050"

	// DefaultTorTimeout bounds dialing through the Tor proxy. Tor circuits
	// are slower than direct connections, so this is longer than
	// DefaultTimeout.
	DefaultTorTimeout = 60 * time.Second

	// DefaultTorStartupTimeout is the maximum time to wait for the embedded
	// Tor daemon to bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute
)

// Config holds every option of a check run. It is built from defaults,
// then the config file, then command line flags, and passed down
// explicitly.
//
// Design decision: a single flat struct, as the number of options is small.
type Config struct {
	// Password is the password given with --password. Command line
	// arguments can end up in shell history, so the flag is documented as
	// a convenience for scripts only.
	Password string

	// ReadStdin reads passwords from standard input, one per line.
	ReadStdin bool

	// InputFile is a file of passwords, one per line.
	InputFile string

	// Interactive is set when no password source was given and standard
	// input is a terminal, so the user can be prompted.
	Interactive bool

	// WordlistPath enables the local wordlist check when non-empty.
	WordlistPath string

	// HIBP enables the breach lookup.
	HIBP bool

	// BreachEndpoint is the range API base URL, ending in "/".
	BreachEndpoint string

	// Timeout bounds each breach request.
	Timeout time.Duration

	// Retries is the number of extra attempts after a transport error or a
	// 5xx response.
	Retries int

	// Padding asks the range API to pad responses so their size does not
	// reveal the prefix.
	Padding bool

	// UseCache stores range responses in an SQLite cache under CacheDir.
	UseCache bool

	// CacheTTL is how long cached range responses are used.
	CacheTTL time.Duration

	// CacheDir holds the range cache database.
	CacheDir string

	// Zxcvbn enables the zxcvbn estimate.
	Zxcvbn bool

	// UserInputs are words zxcvbn should treat as guessable, such as the
	// user's name.
	UserInputs []string

	// UseTor routes breach lookups through Tor.
	UseTor bool

	// TorProxyAddress is an external Tor SOCKS5 proxy. When empty and
	// UseTor is set, an embedded Tor daemon is started.
	TorProxyAddress string

	// TorTimeout bounds dialing through the Tor proxy.
	TorTimeout time.Duration

	// TorStartupTimeout bounds the embedded Tor daemon's bootstrap.
	TorStartupTimeout time.Duration

	// BatchSize is the number of passwords analyzed concurrently.
	BatchSize int

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with
	// JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string

	// Verbose enables debug logging and the detailed report.
	Verbose bool

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BreachEndpoint:    DefaultBreachEndpoint,
		Timeout:           DefaultTimeout,
		Retries:           DefaultRetries,
		Padding:           true,
		CacheTTL:          DefaultCacheTTL,
		CacheDir:          XDGCacheDir(),
		Zxcvbn:            true,
		TorTimeout:        DefaultTorTimeout,
		TorStartupTimeout: DefaultTorStartupTimeout,
		BatchSize:         DefaultBatchSize,
	}
}

// XDGConfigDir returns the XDG config directory for pwcheck.
// On Linux: ~/.config/pwcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for pwcheck, where the
// breach range cache lives.
// On Linux: ~/.cache/pwcheck
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// PasswordSources returns how many password sources were given.
func (c *Config) PasswordSources() int {
	n := 0
	if c.Password != "" {
		n++
	}
	if c.ReadStdin {
		n++
	}
	if c.InputFile != "" {
		n++
	}
	return n
}

// Batch reports whether the run analyzes a list of passwords rather than
// a single one.
func (c *Config) Batch() bool {
	return c.ReadStdin || c.InputFile != ""
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	switch n := c.PasswordSources(); {
	case n > 1:
		return ErrConflictingPasswordSources
	case n == 0 && !c.Interactive:
		return ErrNoPassword
	}

	if c.Timeout <= 0 || c.TorTimeout <= 0 || c.TorStartupTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.Retries < 0 {
		return ErrInvalidRetries
	}
	if c.UseCache && c.CacheTTL <= 0 {
		return ErrInvalidCacheTTL
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
