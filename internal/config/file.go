package config

import "time"

// File is the structure of the YAML config file. Every field is optional;
// pointer fields distinguish "not set" from a zero value.
type File struct {
	// Wordlist is the path of a local wordlist.
	Wordlist string `yaml:"wordlist,omitempty"`

	Breach BreachFile `yaml:"hibp,omitempty"`
	Tor    TorFile    `yaml:"tor,omitempty"`
	Zxcvbn ZxcvbnFile `yaml:"zxcvbn,omitempty"`

	// Batch is the number of passwords analyzed concurrently.
	Batch int `yaml:"batch,omitempty"`
}

// BreachFile configures the breach lookup.
type BreachFile struct {
	Enabled  *bool         `yaml:"enabled,omitempty"`
	Endpoint string        `yaml:"endpoint,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	Padding  *bool         `yaml:"padding,omitempty"`
	Retries  *int          `yaml:"retries,omitempty"`
	Cache    *bool         `yaml:"cache,omitempty"`
	CacheTTL time.Duration `yaml:"cache_ttl,omitempty"`
	CacheDir string        `yaml:"cache_dir,omitempty"`
}

// TorFile configures routing breach lookups through Tor.
type TorFile struct {
	Enabled        *bool         `yaml:"enabled,omitempty"`
	Proxy          string        `yaml:"proxy,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
	StartupTimeout time.Duration `yaml:"startup_timeout,omitempty"`
}

// ZxcvbnFile configures the zxcvbn estimate.
type ZxcvbnFile struct {
	Enabled    *bool    `yaml:"enabled,omitempty"`
	UserInputs []string `yaml:"user_inputs,omitempty"`
}

// Apply overlays the values set in f onto c. Unset fields leave c
// unchanged. A nil File is a no-op.
func (f *File) Apply(c *Config) {
	if f == nil {
		return
	}

	if f.Wordlist != "" {
		c.WordlistPath = f.Wordlist
	}
	if f.Batch != 0 {
		c.BatchSize = f.Batch
	}

	b := f.Breach
	setBool(&c.HIBP, b.Enabled)
	if b.Endpoint != "" {
		c.BreachEndpoint = b.Endpoint
	}
	if b.Timeout != 0 {
		c.Timeout = b.Timeout
	}
	setBool(&c.Padding, b.Padding)
	if b.Retries != nil {
		c.Retries = *b.Retries
	}
	setBool(&c.UseCache, b.Cache)
	if b.CacheTTL != 0 {
		c.CacheTTL = b.CacheTTL
	}
	if b.CacheDir != "" {
		c.CacheDir = b.CacheDir
	}

	t := f.Tor
	setBool(&c.UseTor, t.Enabled)
	if t.Proxy != "" {
		c.TorProxyAddress = t.Proxy
	}
	if t.Timeout != 0 {
		c.TorTimeout = t.Timeout
	}
	if t.StartupTimeout != 0 {
		c.TorStartupTimeout = t.StartupTimeout
	}

	setBool(&c.Zxcvbn, f.Zxcvbn.Enabled)
	if len(f.Zxcvbn.UserInputs) > 0 {
		c.UserInputs = append([]string(nil), f.Zxcvbn.UserInputs...)
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
