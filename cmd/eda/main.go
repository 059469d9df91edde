// Command eda runs univariate analyses on a dataset file from the terminal.
//
//	eda nulls     -file housing.csv
//	eda rows      -file housing.csv -format json
//	eda describe  -file housing.csv -columns area,tax_value
//	eda hist      -file housing.csv -columns area,tax_value -out figures
//	eda box       -file housing.csv -out figures
//	eda single    -file housing.csv -feature area -title Area -bins 30
//	eda nullchart -file housing.csv
//	eda export    -file housing.csv -format xlsx
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-gota/gota/dataframe"

	"edacli/internal/config"
	"edacli/internal/dataset"
	"edacli/internal/infrastructure"
	"edacli/internal/middleware"
	"edacli/internal/services"
	"edacli/internal/univariate"
	"edacli/internal/validation"
)

const usage = `usage: eda <command> -file <dataset> [flags]

commands:
  nulls      missing values per column
  rows       missing values per row, grouped
  describe   descriptive statistics of numeric columns
  hist       histogram grid of columns
  box        boxplot grid of columns
  single     histogram and boxplot of one feature
  nullchart  bar chart of missing values per column
  export     write the summaries to CSV files or an XLSX workbook

Run "eda <command> -h" for the flags of a command.
`

// errUsage marks errors already explained by the flag set
var errUsage = errors.New("usage")

type options struct {
	file     string
	sheet    string
	columns  string
	out      string
	format   string
	feature  string
	title    string
	bins     int
	dpi      int
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "eda: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts, err := parseFlags(args[0], args[1:], cfg, stderr)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging
	logCfg.Level = opts.logLevel
	logger, err := infrastructure.NewLogger(logCfg, stderr)
	if err != nil {
		return err
	}

	ctx = infrastructure.WithDataset(infrastructure.EnsureTraceID(ctx), opts.file)
	logger = infrastructure.WithComponent(logger, "cli").With(
		slog.String("trace_id", infrastructure.GetTraceID(ctx)),
		slog.String("command", args[0]))

	v := validation.NewFileValidator(logger)
	if _, err := v.ValidateDatasetFile(opts.file); err != nil {
		return err
	}
	if opts.out != "" {
		if err := v.ValidateOutputDirectory(opts.out); err != nil {
			return err
		}
	}

	df, err := dataset.Load(opts.file, dataset.LoadOptions{Sheet: opts.sheet})
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "dataset loaded",
		slog.String("file", opts.file),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))

	return cmd(ctx, &env{df: df, opts: opts, stdout: stdout, logger: logger})
}

type env struct {
	df     dataframe.DataFrame
	opts   options
	stdout io.Writer
	logger *slog.Logger
}

var commands = map[string]func(context.Context, *env) error{
	"nulls":     runNulls,
	"rows":      runRows,
	"describe":  runDescribe,
	"hist":      runHist,
	"box":       runBox,
	"single":    runSingle,
	"nullchart": runNullChart,
	"export":    runExport,
}

func parseFlags(name string, args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("eda "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "file", "", "dataset file (.csv, .xlsx or .json)")
	fs.StringVar(&opts.sheet, "sheet", "", "XLSX sheet name (first sheet by default)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	switch name {
	case "nulls", "rows", "describe":
		fs.StringVar(&opts.format, "format", "table", "output format: table or json")
		if name == "describe" {
			fs.StringVar(&opts.columns, "columns", "", "comma separated columns (all numeric columns by default)")
		}
	case "hist", "box", "single", "nullchart":
		fs.StringVar(&opts.out, "out", cfg.Paths.OutputDir, "directory for the PNG figures")
		fs.IntVar(&opts.dpi, "dpi", cfg.Plot.DPI, "figure resolution")
		switch name {
		case "hist", "box":
			fs.StringVar(&opts.columns, "columns", "", "comma separated columns (all numeric columns by default)")
		case "single":
			fs.StringVar(&opts.feature, "feature", "", "column to plot")
			fs.StringVar(&opts.title, "title", "", "figure title")
			fs.IntVar(&opts.bins, "bins", univariate.DefaultSingleBins, "histogram bins")
		}
	case "export":
		fs.StringVar(&opts.out, "out", cfg.Paths.OutputDir, "directory for the exported files")
		fs.StringVar(&opts.format, "format", services.ExportXLSX, "export format: xlsx or csv")
	}

	if err := fs.Parse(args); err != nil {
		// the flag set has already printed the problem and usage
		return opts, errUsage
	}
	if opts.file == "" {
		fmt.Fprintln(stderr, "-file is required")
		fs.Usage()
		return opts, errUsage
	}
	if name == "single" && opts.feature == "" {
		fmt.Fprintln(stderr, "-feature is required")
		fs.Usage()
		return opts, errUsage
	}
	return opts, nil
}

func runNulls(ctx context.Context, e *env) error {
	summary, err := univariate.SummarizeColumnNulls(e.df)
	if err != nil {
		return err
	}
	return e.print(summary, summary.DataFrame())
}

func runRows(ctx context.Context, e *env) error {
	summary, err := univariate.SummarizeRowNulls(e.df)
	if err != nil {
		return err
	}
	return e.print(summary, summary.DataFrame())
}

func runDescribe(ctx context.Context, e *env) error {
	desc, err := univariate.Describe(e.df, middleware.SplitList(e.opts.columns))
	if err != nil {
		return err
	}
	return e.print(desc, desc.DataFrame())
}

func runHist(ctx context.Context, e *env) error {
	return e.render(func(r *univariate.Renderer) error {
		return r.Histograms(ctx, e.df, e.columns())
	})
}

func runBox(ctx context.Context, e *env) error {
	return e.render(func(r *univariate.Renderer) error {
		return r.Boxplots(ctx, e.df, e.columns())
	})
}

func runSingle(ctx context.Context, e *env) error {
	return e.render(func(r *univariate.Renderer) error {
		return r.PlotSingleVariable(ctx, e.df, e.opts.feature,
			univariate.SingleOptions{Title: e.opts.title, Bins: e.opts.bins})
	})
}

func runNullChart(ctx context.Context, e *env) error {
	summary, err := univariate.SummarizeColumnNulls(e.df)
	if err != nil {
		return err
	}
	return e.render(func(r *univariate.Renderer) error {
		return r.NullChart(ctx, summary)
	})
}

func runExport(ctx context.Context, e *env) error {
	tables, err := services.SummaryTables(e.df)
	if err != nil {
		return err
	}

	base := filepath.Base(e.opts.file)
	written, err := services.WriteTables(&config.Paths{OutputDir: e.opts.out}, e.logger, base, e.opts.format, tables)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(e.stdout, path)
	}
	return nil
}

// columns returns the requested columns, or every numeric column
func (e *env) columns() []string {
	if cols := middleware.SplitList(e.opts.columns); len(cols) > 0 {
		return cols
	}
	return univariate.NumericColumns(e.df)
}

func (e *env) render(draw func(*univariate.Renderer) error) error {
	backend := univariate.NewDirBackend(e.opts.out)
	if err := draw(univariate.NewRenderer(backend, e.opts.dpi, e.logger)); err != nil {
		return err
	}
	for _, path := range backend.Paths() {
		fmt.Fprintln(e.stdout, path)
	}
	return nil
}

func (e *env) print(v interface{}, table dataframe.DataFrame) error {
	switch e.opts.format {
	case "json":
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "table", "":
		_, err := fmt.Fprintln(e.stdout, table.String())
		return err
	default:
		return fmt.Errorf("unknown output format %q", e.opts.format)
	}
}
