// Package main provides the farsreport CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fars-report/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/fars-report/internal/adapter/http"
	"github.com/couchcryptid/fars-report/internal/config"
	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
	"github.com/couchcryptid/fars-report/internal/pipeline"
	"github.com/couchcryptid/fars-report/internal/render"
)

// maxRangeSpan bounds range expansion so a typo like 2013-20015 fails fast
// instead of warning about thousands of missing files.
const maxRangeSpan = 1000

var (
	flagDataDir     string
	flagPattern     string
	flagLogLevel    string
	flagLogFormat   string
	flagMetricsAddr string

	mapStateFlag string
	mapYearFlag  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "farsreport",
		Short:        "Summarize and map FARS yearly accident files",
		SilenceUsage: true,
		Long: `farsreport reads the yearly accident files of the Fatality Analysis
Reporting System (accident_<year>.csv.bz2) from a local data directory and
produces reports: a month-by-year count matrix, or a terminal scatter map of
one state's accident locations.`,
	}

	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory with accident files (overrides FARS_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagPattern, "pattern", "", "file name pattern with one %d (overrides FARS_FILENAME_PATTERN)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn, or error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "text or json (overrides LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "expose /metrics and /healthz on this address (overrides METRICS_ADDR)")

	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newMapCmd())

	return rootCmd
}

// app holds the wired pipeline for one command invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	pipe   *pipeline.Pipeline
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	resolver := csvfile.Resolver{Dir: cfg.DataDir, Pattern: cfg.FilenamePattern}
	renderer := render.NewScatter(cmd.OutOrStdout())
	pipe := pipeline.New(resolver, csvfile.Loader{}, renderer, logger, metrics)

	return &app{cfg: cfg, logger: logger, pipe: pipe}, nil
}

// applyFlagOverrides lets explicit flags win over the environment.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if flags.Changed("pattern") {
		if err := csvfile.ValidatePattern(flagPattern); err != nil {
			return err
		}
		cfg.FilenamePattern = flagPattern
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = flagMetricsAddr
	}
	return nil
}

// runWithMetrics runs fn with the optional metrics listener up for the
// duration of the report. One-shot runs leave METRICS_ADDR unset and skip
// the listener entirely.
func (a *app) runWithMetrics(fn func() error) error {
	if a.cfg.MetricsAddr == "" {
		return fn()
	}

	srv := httpadapter.NewServer(a.cfg.MetricsAddr, a.logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("metrics server shutdown error", "error", err)
		}
	}()

	return fn()
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <year>...",
		Short: "Print a month-by-year accident count matrix",
		Long: `Count accidents per month across the requested years. Years may be single
tokens (2013) or inclusive ranges (2013-2015). A year whose file is missing
or unreadable is skipped with a warning; the matrix covers whatever loaded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSummaryCmd,
	}
}

func runSummaryCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	tokens, err := expandYearArgs(args)
	if err != nil {
		return err
	}
	return a.runWithMetrics(func() error {
		matrix, err := a.pipe.SummarizeYears(cmd.Context(), tokens)
		if err != nil {
			return err
		}
		return writeSummary(cmd.OutOrStdout(), matrix)
	})
}

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Draw one state's accident locations for a year",
		Long: `Draw a scatter map of one state's fatal accident locations for one year.
States are FIPS codes as used by the FARS STATE column. Locations the data
marks as unknown (the 777.7777/888.8888/999.9999 sentinel codes) are
excluded from the plot.`,
		RunE: runMapCmd,
	}
	cmd.Flags().StringVar(&mapStateFlag, "state", "", "FIPS state code (1 = Alabama, 48 = Texas)")
	cmd.Flags().StringVar(&mapYearFlag, "year", "", "year to map")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func runMapCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.runWithMetrics(func() error {
		sm, err := a.pipe.MapState(cmd.Context(), mapStateFlag, mapYearFlag)
		if err != nil {
			return err
		}
		if len(sm.Points) == 0 {
			if sm.Matched == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no accidents to plot")
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "no mappable coordinates (%d accidents without usable locations)\n", sm.Matched)
			}
		}
		return err
	})
}

// expandYearArgs expands range tokens like "2013-2015" into individual year
// tokens. Anything not a well-formed ascending range passes through
// verbatim, keeping the per-year warning path for bad tokens instead of
// failing the whole run.
func expandYearArgs(args []string) ([]string, error) {
	tokens := make([]string, 0, len(args))
	for _, arg := range args {
		from, to, ok := parseYearRange(arg)
		if !ok {
			tokens = append(tokens, arg)
			continue
		}
		if to-from > maxRangeSpan {
			return nil, fmt.Errorf("year range %s spans more than %d years", arg, maxRangeSpan)
		}
		for y := from; y <= to; y++ {
			tokens = append(tokens, strconv.Itoa(y))
		}
	}
	return tokens, nil
}

func parseYearRange(arg string) (from, to int, ok bool) {
	parts := strings.SplitN(arg, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	to, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if to < from {
		return 0, 0, false
	}
	return from, to, true
}

// writeSummary prints the matrix as an aligned table. Absent cells print as
// blanks: no data for that month and year is not the same as a zero count.
func writeSummary(w io.Writer, m *domain.SummaryMatrix) error {
	if m.Empty() {
		_, err := fmt.Fprintln(w, "no records loaded")
		return err
	}

	years := m.Years()
	headers := make([]string, 0, len(years)+1)
	headers = append(headers, "MONTH")
	for _, y := range years {
		headers = append(headers, y.String())
	}

	rows := make([][]string, 0, len(m.Months()))
	for _, month := range m.Months() {
		row := make([]string, 0, len(years)+1)
		row = append(row, strconv.Itoa(month))
		for _, y := range years {
			if n, ok := m.Count(month, y); ok {
				row = append(row, strconv.Itoa(n))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	for _, line := range formatAligned(headers, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatAligned right-aligns every column to its widest value with two
// spaces between columns. Cells here are all ASCII digits, so byte length is
// display width.
func formatAligned(headers []string, rows [][]string) []string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	format := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			b.WriteString(cell)
		}
		return b.String()
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, format(headers))
	for _, row := range rows {
		lines = append(lines, format(row))
	}
	return lines
}
