// Package config holds the options of a pwcheck run: defaults, the YAML
// config file and validation. Command line flags are applied on top by
// cmd/pwcheck.
package config
