package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/pwcheck/internal/config"
	"github.com/nao1215/pwcheck/internal/database"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the breach range cache",
		Long: `Cache shows the on-disk cache of breach range responses filled by
"pwcheck check --hibp --cache".

The cache holds only what the range API returns for a hash prefix: the
prefix and the suffixes under it. It never records which password was
checked.

Examples:
  # Show cache statistics
  pwcheck cache

  # List cached ranges, newest first
  pwcheck cache --list

  # Remove expired ranges
  pwcheck cache --purge

  # Remove every cached range
  pwcheck cache --purge --all`,
		Args: cobra.NoArgs,
		RunE: runCacheCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List cached ranges")
	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of ranges to list (0 for all)")
	cmd.Flags().Bool("purge", false,
		"Remove expired ranges")
	cmd.Flags().Bool("all", false,
		"With --purge, remove fresh ranges too")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pwcheck in current or home directory)")

	return cmd
}

// cacheOptions are the parsed flags of the cache command.
type cacheOptions struct {
	list  bool
	limit int
	purge bool
	all   bool
}

func runCacheCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var opts cacheOptions
	if opts.list, err = cmd.Flags().GetBool("list"); err != nil {
		return err
	}
	if opts.limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return err
	}
	if opts.purge, err = cmd.Flags().GetBool("purge"); err != nil {
		return err
	}
	if opts.all, err = cmd.Flags().GetBool("all"); err != nil {
		return err
	}
	if opts.all && !opts.purge {
		return errors.New("--all requires --purge")
	}

	return runCache(cmd, cfg, opts)
}

func runCache(cmd *cobra.Command, cfg *config.Config, opts cacheOptions) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	path := filepath.Join(cfg.CacheDir, database.FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "No breach cache at %s\n", path)
			return nil
		}
		return fmt.Errorf("failed to check cache: %w", err)
	}

	cache, err := database.Open(cfg.CacheDir, database.Options{TTL: cfg.CacheTTL})
	if err != nil {
		return err
	}
	defer cache.Close()

	if opts.purge {
		n, err := cache.Purge(ctx, !opts.all)
		if err != nil {
			return fmt.Errorf("failed to purge cache: %w", err)
		}
		fmt.Fprintf(out, "Removed %d cached range(s)\n", n)
		return nil
	}

	if opts.list {
		entries, err := cache.List(ctx, opts.limit)
		if err != nil {
			return fmt.Errorf("failed to list cache: %w", err)
		}
		return writeEntries(out, entries)
	}

	stats, err := cache.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cache statistics: %w", err)
	}
	writeStats(out, cache.Path(), cache.TTL().String(), stats)
	return nil
}

func writeStats(out io.Writer, path, ttl string, s database.Stats) {
	fmt.Fprintf(out, "Cache:   %s\n", path)
	fmt.Fprintf(out, "TTL:     %s\n", ttl)
	fmt.Fprintf(out, "Ranges:  %d (%d expired)\n", s.Entries, s.Expired)
	fmt.Fprintf(out, "Size:    %s\n", humanize.Bytes(uint64(max(s.Bytes, 0))))
	if s.Entries > 0 {
		fmt.Fprintf(out, "Oldest:  %s\n", humanize.Time(s.Oldest))
		fmt.Fprintf(out, "Newest:  %s\n", humanize.Time(s.Newest))
	}
}

func writeEntries(out io.Writer, entries []database.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, "The cache is empty")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PREFIX\tSIZE\tFETCHED\tSTATUS")
	for _, e := range entries {
		status := "fresh"
		if e.Expired {
			status = "expired"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Prefix, humanize.Bytes(uint64(max(e.Size, 0))), humanize.Time(e.FetchedAt), status)
	}
	return tw.Flush()
}
