package main

import (
	"fmt"
	"time"

	"github.com/nao1215/pwcheck/internal/config"
	"github.com/spf13/cobra"
)

// loadConfig returns the defaults overlaid by the config file. An explicit
// --config path that does not exist is an error; otherwise a missing file
// means defaults only.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = path
	cfg.Verbose = getVerboseFlag(cmd)

	found := config.FindConfigFile(path)
	if found == "" {
		if path != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return cfg, nil
	}

	f, err := config.LoadConfigFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	f.Apply(cfg)
	return cfg, nil
}

// flagReader copies flags the user set explicitly. Unset flags leave the
// destination alone so config file values survive. The first error sticks.
type flagReader struct {
	cmd *cobra.Command
	err error
}

func (r *flagReader) changed(name string) bool {
	return r.err == nil && r.cmd.Flags().Changed(name)
}

func (r *flagReader) stringVar(name string, dst *string) {
	if !r.changed(name) {
		return
	}
	*dst, r.err = r.cmd.Flags().GetString(name)
}

func (r *flagReader) boolVar(name string, dst *bool) {
	if !r.changed(name) {
		return
	}
	*dst, r.err = r.cmd.Flags().GetBool(name)
}

// negatedVar sets *dst to the inverse of a --no-* flag.
func (r *flagReader) negatedVar(name string, dst *bool) {
	if !r.changed(name) {
		return
	}
	var v bool
	v, r.err = r.cmd.Flags().GetBool(name)
	*dst = !v
}

func (r *flagReader) intVar(name string, dst *int) {
	if !r.changed(name) {
		return
	}
	*dst, r.err = r.cmd.Flags().GetInt(name)
}

func (r *flagReader) durationVar(name string, dst *time.Duration) {
	if !r.changed(name) {
		return
	}
	*dst, r.err = r.cmd.Flags().GetDuration(name)
}

func (r *flagReader) stringSliceVar(name string, dst *[]string) {
	if !r.changed(name) {
		return
	}
	*dst, r.err = r.cmd.Flags().GetStringSlice(name)
}
