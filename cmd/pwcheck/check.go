package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/pwcheck/internal/breach"
	"github.com/nao1215/pwcheck/internal/config"
	"github.com/nao1215/pwcheck/internal/database"
	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/pipeline"
	"github.com/nao1215/pwcheck/internal/report"
	"github.com/nao1215/pwcheck/internal/strength"
	"github.com/nao1215/pwcheck/internal/tor"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Result sources for passwords that do not come from a list.
const (
	sourceFlag   = "flag"
	sourcePrompt = "prompt"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the strength of one or more passwords",
		Long: `Check analyzes passwords and reports:
- Character classes, length and Shannon entropy
- A 0-4 score with a label from "Very weak" to "Very strong"
- A zxcvbn estimate (disable with --no-zxcvbn)
- Whether the password is in a local wordlist (--wordlist)
- How often the password appears in known breaches (--hibp)

Without --password, --stdin or --input, pwcheck prompts for passwords
with echo turned off until an empty password is entered.

Examples:
  # Prompt for passwords
  pwcheck check

  # Check against a wordlist and the breach database
  pwcheck check --hibp -w /usr/share/wordlists/rockyou.txt

  # Audit a list of passwords, four at a time, as Markdown
  pwcheck check -i passwords.txt -m -o audit.md

  # Route the breach lookup through an existing Tor proxy
  pwcheck check --hibp --tor-proxy 127.0.0.1:9050`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	// Password sources
	cmd.Flags().StringP("password", "p", "",
		"Password to check (ends up in shell history; prefer the prompt or --stdin)")
	cmd.Flags().Bool("stdin", false,
		"Read passwords from standard input, one per line")
	cmd.Flags().StringP("input", "i", "",
		"Read passwords from a file, one per line")

	// Local checks
	cmd.Flags().StringP("wordlist", "w", "",
		"Check passwords against a local wordlist")
	cmd.Flags().Bool("no-zxcvbn", false,
		"Skip the zxcvbn estimate")
	cmd.Flags().StringSlice("user-input", nil,
		"Words zxcvbn should treat as guessable, such as your name (repeatable)")

	// Breach lookup flags
	cmd.Flags().Bool("hibp", false,
		"Look passwords up in the HaveIBeenPwned breach data")
	cmd.Flags().String("endpoint", config.DefaultBreachEndpoint,
		"Breach range API base URL")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each breach request")
	cmd.Flags().Int("retries", config.DefaultRetries,
		"Extra attempts after a failed breach request")
	cmd.Flags().Bool("no-padding", false,
		"Do not ask the breach API to pad its responses")
	cmd.Flags().Bool("cache", false,
		"Cache breach range responses on disk")

	// Tor connection flags
	cmd.Flags().Bool("tor", false,
		"Route breach lookups through Tor (embedded daemon unless --tor-proxy is set)")
	cmd.Flags().String("tor-proxy", "",
		"Use an external Tor SOCKS5 proxy at the specified address (implies --tor)")
	cmd.Flags().DurationP("tor-timeout", "T", config.DefaultTorStartupTimeout,
		"Timeout for embedded Tor startup")

	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of passwords analyzed concurrently")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pwcheck in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	stdin, isFile := cmd.InOrStdin().(*os.File)
	cfg.Interactive = cfg.PasswordSources() == 0 && isFile &&
		term.IsTerminal(int(stdin.Fd())) //nolint:gosec // file descriptors fit in int

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cio := checkIO{
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		status: cmd.ErrOrStderr(),
	}
	if cfg.Interactive {
		cio.prompt = newTerminalPrompter(stdin, cmd.ErrOrStderr())
	}
	return runCheck(ctx, cfg, cio, logger)
}

// buildConfig creates a Config from defaults, the config file and the
// flags the user set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	r := &flagReader{cmd: cmd}
	r.stringVar("password", &cfg.Password)
	r.boolVar("stdin", &cfg.ReadStdin)
	r.stringVar("input", &cfg.InputFile)
	r.stringVar("wordlist", &cfg.WordlistPath)
	r.negatedVar("no-zxcvbn", &cfg.Zxcvbn)
	r.stringSliceVar("user-input", &cfg.UserInputs)
	r.boolVar("hibp", &cfg.HIBP)
	r.stringVar("endpoint", &cfg.BreachEndpoint)
	r.durationVar("timeout", &cfg.Timeout)
	r.intVar("retries", &cfg.Retries)
	r.negatedVar("no-padding", &cfg.Padding)
	r.boolVar("cache", &cfg.UseCache)
	r.boolVar("tor", &cfg.UseTor)
	r.stringVar("tor-proxy", &cfg.TorProxyAddress)
	r.durationVar("tor-timeout", &cfg.TorStartupTimeout)
	r.intVar("batch", &cfg.BatchSize)
	r.boolVar("json", &cfg.JSONReport)
	r.boolVar("markdown", &cfg.MarkdownReport)
	r.stringVar("output", &cfg.ReportFile)
	if r.err != nil {
		return nil, r.err
	}

	if cmd.Flags().Changed("tor-proxy") && cfg.TorProxyAddress != "" {
		cfg.UseTor = true
	}
	return cfg, nil
}

// checkIO holds the streams a check run talks to.
type checkIO struct {
	in     io.Reader
	out    io.Writer
	status io.Writer

	// prompt is nil unless the run is interactive.
	prompt prompter
}

// runCheck wires the optional checks and runs the selected mode.
func runCheck(ctx context.Context, cfg *config.Config, cio checkIO, logger *slog.Logger) (err error) {
	opts, cleanup, err := analysisOptions(ctx, cfg, cio.status, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	out, closeOut, err := openOutput(cfg.ReportFile, cio.out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", cerr)
		}
	}()
	w := newReportWriter(cfg, out)

	switch {
	case cfg.Batch():
		return runBatch(ctx, cfg, cio.in, w, opts)
	case cfg.Password != "":
		opts.Source = sourceFlag
		if _, err := w.Write(pipeline.Analyze(ctx, cfg.Password, opts)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	case cio.prompt != nil:
		return runInteractive(ctx, cio.prompt, w, opts)
	default:
		return config.ErrNoPassword
	}
}

// runInteractive prompts until the user enters an empty password, closes
// the input or declines to check another one.
func runInteractive(ctx context.Context, p prompter, w report.Writer, opts pipeline.Options) error {
	opts.Source = sourcePrompt
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		password, err := p.Password("Enter password (leave empty to quit): ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if password == "" {
			return nil
		}

		if _, err := w.Write(pipeline.Analyze(ctx, password, opts)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		again, err := p.Confirm("Check another? [y/N]: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if !again {
			return nil
		}
	}
}

// runBatch analyzes a list of passwords concurrently and writes one report
// with a summary. On cancellation the partial report is still written.
func runBatch(ctx context.Context, cfg *config.Config, stdin io.Reader, w report.Writer, opts pipeline.Options) error {
	var (
		inputs []pipeline.Input
		err    error
	)
	if cfg.ReadStdin {
		inputs, err = pipeline.ReadInputs(ctx, stdin, "stdin")
	} else {
		inputs, err = pipeline.ReadInputsFile(ctx, cfg.InputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read passwords: %w", err)
	}
	if len(inputs) == 0 {
		return errors.New("no passwords to check: the input is empty")
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline { return pipeline.NewAnalysisPipeline(opts) },
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(opts.Logger),
	)
	results, runErr := bp.ProcessBatch(ctx, inputs)

	if _, err := w.WriteBatch(results, model.Summarize(results)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return runErr
}

// analysisOptions builds the optional collaborators of the analysis. The
// returned cleanup releases them and is never nil.
func analysisOptions(ctx context.Context, cfg *config.Config, status io.Writer, logger *slog.Logger) (pipeline.Options, func(), error) {
	opts := pipeline.Options{
		WordlistPath: cfg.WordlistPath,
		Verbose:      cfg.Verbose,
		Logger:       logger,
	}
	if cfg.Zxcvbn {
		opts.Estimator = strength.NewZxcvbnEstimator(cfg.UserInputs...)
	}

	if !cfg.HIBP {
		if cfg.UseTor || cfg.UseCache {
			logger.Warn("tor and cache settings only apply to the breach check; enable it with --hibp")
		}
		return opts, func() {}, nil
	}

	doer, stopTor, err := breachTransport(ctx, cfg, status, logger)
	if err != nil {
		return opts, func() {}, err
	}
	cleanups := []func(){stopTor}

	clientOpts := []breach.Option{
		breach.WithEndpoint(cfg.BreachEndpoint),
		breach.WithTimeout(cfg.Timeout),
		breach.WithPadding(cfg.Padding),
		breach.WithUserAgent(userAgent()),
		breach.WithLogger(logger),
	}
	if cfg.UseCache {
		cache, err := database.Open(cfg.CacheDir, database.Options{
			CreateIfNotExists: true,
			EnableWAL:         true,
			TTL:               cfg.CacheTTL,
		})
		if err != nil {
			logger.Warn("breach cache unavailable, continuing without it", "dir", cfg.CacheDir, "error", err)
		} else {
			logger.Debug("breach cache opened", "path", cache.Path())
			clientOpts = append(clientOpts, breach.WithCache(cache))
			cleanups = append(cleanups, func() {
				if err := cache.Close(); err != nil {
					logger.Warn("failed to close breach cache", "error", err)
				}
			})
		}
	}

	opts.Breach = breach.NewClient(breach.NewRetryingDoer(doer, cfg.Retries), clientOpts...)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	return opts, cleanup, nil
}

// breachTransport returns the HTTP client breach lookups go through and a
// function that releases it.
func breachTransport(ctx context.Context, cfg *config.Config, status io.Writer, logger *slog.Logger) (breach.Doer, func(), error) {
	if !cfg.UseTor {
		return &http.Client{Timeout: cfg.Timeout}, func() {}, nil
	}

	if cfg.TorProxyAddress == "" {
		return startEmbeddedTor(ctx, cfg, status, logger)
	}

	client, err := tor.NewClient(cfg.TorProxyAddress, cfg.TorTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Tor client: %w", err)
	}
	if st := client.CheckConnection(ctx); st != tor.ProxyStatusOK {
		return nil, nil, fmt.Errorf("tor proxy check failed: %w (make sure Tor is running at %s)",
			st.Err(), cfg.TorProxyAddress)
	}
	logger.Info("Tor proxy connection verified", "address", cfg.TorProxyAddress)
	return client.NewHTTPClient(), func() {}, nil
}

// startEmbeddedTor starts an embedded Tor daemon using tornago and returns
// an HTTP client that dials through it.
func startEmbeddedTor(ctx context.Context, cfg *config.Config, status io.Writer, logger *slog.Logger) (breach.Doer, func(), error) {
	fmt.Fprintln(status, "Starting embedded Tor daemon...")
	fmt.Fprintf(status, "This may take 1-3 minutes while Tor bootstraps and connects to the network.\n\n")

	embedded := tor.NewEmbeddedTor(tor.WithStartupTimeout(cfg.TorStartupTimeout))
	if err := embedded.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start embedded Tor: %w", err)
	}
	stop := func() {
		logger.Info("stopping embedded Tor daemon")
		if err := embedded.Stop(); err != nil {
			logger.Error("failed to stop embedded Tor", "error", err)
		}
	}

	logger.Info("embedded Tor daemon started",
		"socksAddr", embedded.SocksAddr(),
		"controlAddr", embedded.ControlAddr(),
	)

	client, err := embedded.NewClient(cfg.TorTimeout)
	if err != nil {
		stop()
		return nil, nil, fmt.Errorf("failed to create Tor client: %w", err)
	}
	if st := client.CheckConnection(ctx); st != tor.ProxyStatusOK {
		stop()
		return nil, nil, fmt.Errorf("embedded Tor proxy check failed: %w", st.Err())
	}

	fmt.Fprintf(status, "Embedded Tor daemon ready (SOCKS proxy: %s)\n\n", embedded.SocksAddr())
	return client.NewHTTPClient(), stop, nil
}

// openOutput returns the report destination: stdout, or path created with
// owner-only permissions.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter picks the report format.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w,
			report.WithVerbose(cfg.Verbose),
			report.WithStyles(report.StylesFor(w)),
		)
	}
}
