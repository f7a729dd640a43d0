package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kadresources/sheetsync/internal/config"
	"github.com/kadresources/sheetsync/internal/discovery"
	"github.com/kadresources/sheetsync/internal/logger"
	"github.com/kadresources/sheetsync/internal/pipeline"
	"github.com/kadresources/sheetsync/internal/resource"
	"github.com/kadresources/sheetsync/internal/sheets"
	"github.com/kadresources/sheetsync/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig            string
	flagSheetID           string
	flagSheets            []string
	flagOutput            string
	flagWorkbook          string
	flagDiscover          bool
	flagDefaultSubHeading string
	flagTimeout           time.Duration
	flagLogLevel          string
	flagDryRun            bool
	flagFormat            string
	flagVerbose           bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheetsync",
		Short: "Sync resource listings from a Google Sheet into a Jekyll data file",
		Long: `A CLI tool that pulls every tab of the resources spreadsheet, groups the
rows of each tab by sub-heading and writes _data/resources.yml for the site.

The file is only written when at least one sheet produced entries, so a failed
run never replaces good data with an empty file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSync,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default: ./sheetsync.yaml or ~/.sheetsync/sheetsync.yaml)")
	pf.StringVar(&flagSheetID, "sheet-id", "", "Google Sheets document ID")
	pf.StringSliceVar(&flagSheets, "sheet", nil, "sheet tab to sync, in order (repeatable)")
	pf.StringVar(&flagWorkbook, "workbook", "", "read tabs from a local .xlsx export instead of Google Sheets")
	pf.BoolVar(&flagDiscover, "discover", true, "discover tab names when none are configured")
	pf.DurationVar(&flagTimeout, "timeout", sheets.Timeout, "per-request HTTP timeout")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	cmd.Flags().StringVarP(&flagOutput, "output", "o", storage.DefaultPath, "output YAML file")
	cmd.Flags().StringVar(&flagDefaultSubHeading, "default-sub-heading", "", "group rows without a sub-heading under this name instead of direct_links")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the YAML to stdout instead of writing the file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "summary format: text or json")

	cmd.AddCommand(newDiscoverCmd(), newInitCmd())

	return cmd
}

// loadConfig reads configuration and installs the logger for this run
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level := cfg.Level()
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openSource returns the sheet source and the discovery strategies matching it.
// The returned close function must always be called.
func openSource(cfg *config.Config) (sheets.Source, []discovery.Strategy, func(), error) {
	if cfg.Workbook != "" {
		wb, err := sheets.OpenWorkbook(cfg.Workbook)
		if err != nil {
			return nil, nil, func() {}, err
		}
		closeFn := func() {
			if err := wb.Close(); err != nil {
				logger.Warn("Closing workbook failed", logger.Fields{"error": err.Error()})
			}
		}
		return wb, []discovery.Strategy{discovery.NewListerStrategy(wb)}, closeFn, nil
	}

	client := sheets.New(cfg.SheetID,
		sheets.WithBaseURL(cfg.BaseURL),
		sheets.WithTimeout(cfg.Timeout),
	)
	strategies := []discovery.Strategy{
		discovery.NewFeedStrategy(client, cfg.FeedBaseURL),
		discovery.NewHTMLStrategy(client),
		discovery.NewProbeStrategy(client, cfg.ProbeCandidates),
	}
	return client, strategies, func() {}, nil
}

// runSync is the main command logic
func runSync(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	source, strategies, closeSource, err := openSource(cfg)
	defer closeSource()
	if err != nil {
		return fmt.Errorf("opening sheet source: %w", err)
	}

	var discoverer *discovery.Discoverer
	if cfg.Discover {
		discoverer = discovery.New(strategies...)
	}
	names, err := discovery.Resolve(ctx, cfg.Sheets, discoverer)
	if err != nil {
		return fmt.Errorf("resolving sheet names: %w", err)
	}

	store, err := storage.New(cfg.Output)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	previous, err := store.Load()
	if err != nil {
		logger.Warn("Ignoring unreadable previous output", logger.Fields{
			"path":  store.Path(),
			"error": err.Error(),
		})
		previous = nil
	}

	result, err := pipeline.Run(ctx, pipeline.Options{
		Sheets:   names,
		Source:   source,
		Classify: []resource.ClassifyOption{resource.WithDefaultSubHeading(cfg.DefaultSubHeading)},
	})
	if err != nil {
		return fmt.Errorf("syncing sheets: %w", err)
	}

	summaryOut := cmd.OutOrStdout()
	if flagDryRun {
		if err := storage.Encode(cmd.OutOrStdout(), result.Document); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		summaryOut = cmd.ErrOrStderr()
	} else {
		if err := store.Save(result.Document); err != nil {
			return fmt.Errorf("saving output: %w", err)
		}
		logger.Info("Wrote resources file", logger.Fields{"path": store.Path()})
	}

	summary := &OutputResult{
		SyncedAt:     time.Now().UTC(),
		Output:       store.Path(),
		DryRun:       flagDryRun,
		Sheets:       result.Sheets,
		Headings:     result.Document.Stats(),
		TotalEntries: result.Document.TotalEntries(),
		Changes:      resource.Compare(previous, result.Document),
		Metrics:      result.Metrics,
	}
	if err := WriteOutput(summaryOut, summary, format, flagVerbose); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}

func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Print the sheet tab names discovery finds",
		Long: `Runs sheet discovery against the spreadsheet, ignoring any configured sheet
list, and prints one tab name per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			_, strategies, closeSource, err := openSource(cfg)
			defer closeSource()
			if err != nil {
				return fmt.Errorf("opening sheet source: %w", err)
			}

			names, err := discovery.New(strategies...).Discover(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter sheetsync.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				path = "sheetsync.yaml"
			}
			if err := config.WriteDefault(path, flagSheetID, flagSheets); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

// Execute runs the CLI and returns the process exit code
func Execute(ctx context.Context) int {
	return execute(ctx, NewRootCmd())
}

func execute(ctx context.Context, cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("Sync failed", nil, err)

		stderr := cmd.ErrOrStderr()
		color.New(color.FgRed, color.Bold).Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, discovery.ErrNoSheets) || errors.Is(err, pipeline.ErrNoSheets) || errors.Is(err, pipeline.ErrNoData) {
			fmt.Fprintln(stderr, "No output written.")
		}
		return ExitError
	}
	return ExitSuccess
}
