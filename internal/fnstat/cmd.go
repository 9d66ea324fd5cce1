package fnstat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kbukum/fnkit/bootstrap"
	"github.com/kbukum/fnkit/config"
	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/functional"
	"github.com/kbukum/fnkit/logger"
	"github.com/kbukum/fnkit/observability"
	"github.com/kbukum/fnkit/validation"
	"github.com/kbukum/fnkit/version"
)

// flagKeys maps flags to the config keys they override.
var flagKeys = map[string]string{
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"predicate":  "stats.predicate",
	"min":        "stats.min",
	"max":        "stats.max",
	"scale":      "stats.scale",
	"offset":     "stats.offset",
	"limit":      "stats.limit",
	"telemetry":  "telemetry.enabled",
}

// Execute runs the fnstat command line.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// ExitCode maps a command error to a process exit status: 2 for bad
// configuration or input, 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsCode(err, errors.ErrCodeInvalidConfig), errors.IsCode(err, errors.ErrCodeInvalidInput):
		return 2
	default:
		return 1
	}
}

// NewRootCommand builds the fnstat command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fnstat",
		Short: "Summary statistics over a stream of numbers",
		Long: `fnstat reads one number per line and reports count, sum, mean and
alternating sum of the values that pass the configured filter.

Configuration is read from config.yml, .env files and FNSTAT_* environment
variables; flags override all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default: ./cmd/fnstat/config.yml, ./config/config.yml or ./config.yml)")
	flags.String("env-file", "", "env file (default: .env.fnstat or .env)")
	flags.String("log-level", "", "log level (debug, info, warn, error, disabled)")
	flags.String("log-format", "", "log format (console, json)")

	root.AddCommand(newStatsCommand(), newVersionCommand())
	return root
}

func newStatsCommand() *cobra.Command {
	var (
		asJSON bool
		runID  string
	)

	cmd := &cobra.Command{
		Use:   "stats [files...]",
		Short: "Summarize numbers read from files or stdin",
		Example: `  seq 1 10 | fnstat stats --predicate even
  fnstat stats --min 0 --scale 2 data.txt more.txt
  FNSTAT_STATS_PREDICATE=odd fnstat stats --json < data.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.New().OptionalUUID("run-id", runID).Validate(); err != nil {
				return err
			}
			cfg, err := loadFromFlags(cmd)
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(&cfg.Logging, cfg.Name, logWriter(cmd, cfg.Logging.Output))
			app, err := bootstrap.NewApp(cfg, bootstrap.WithLogger(log), bootstrap.WithRunID(runID))
			if err != nil {
				return err
			}
			registerTelemetry(app)

			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return runStats(ctx, app, cmd, args, asJSON)
			})
		},
	}

	f := cmd.Flags()
	f.String("predicate", "", "keep only all, even, odd, positive or negative values")
	f.Float64("min", 0, "drop values below min")
	f.Float64("max", 0, "drop values above max")
	f.Float64("scale", 1, "multiply kept values by scale")
	f.Float64("offset", 0, "add offset to kept values")
	f.Int("limit", 0, "stop after this many kept values (0: no limit)")
	f.Bool("telemetry", false, "export spans and metrics over OTLP/HTTP")
	f.BoolVar(&asJSON, "json", false, "print the report as JSON")
	f.StringVar(&runID, "run-id", "", "run id for logs and spans (default: random UUID)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "fnstat", info.Full())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")
	return cmd
}

// loadFromFlags loads the config with every changed flag as an override.
func loadFromFlags(cmd *cobra.Command) (*Config, error) {
	var opts []config.LoaderOption
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if path, _ := cmd.Flags().GetString("env-file"); path != "" {
		opts = append(opts, config.WithEnvFile(path))
	}
	opts = append(opts, config.WithOverrides(flagOverrides(cmd.Flags())))
	return LoadConfig(opts...)
}

func flagOverrides(fs *pflag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})
	return overrides
}

func logWriter(cmd *cobra.Command, output string) io.Writer {
	if output == "stdout" {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

func runStats(ctx context.Context, app *bootstrap.App[*Config], cmd *cobra.Command, args []string, asJSON bool) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanCommand)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, app.RunID)
	log := app.Logger.WithContext(ctx).WithComponent("stats")

	inputs, closeInputs, err := openInputs(args, cmd.InOrStdin())
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	defer closeInputs()

	report, err := Compute(ctx, app.Cfg.Stats, Lines(inputs...), functional.WithLogger(log))
	if err != nil {
		observability.SetSpanError(ctx, err)
		log.Error("stats failed", logger.MergeWithError(logger.Fields(logger.FieldErrorCode, observability.ErrorCode(err)), err))
		return err
	}
	log.Info("stats computed", logger.Fields(logger.FieldCount, report.Count, logger.FieldSource, len(inputs)))

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return writeText(cmd.OutOrStdout(), report)
}

// openInputs opens every named file, or stdin when there are none.
func openInputs(paths []string, stdin io.Reader) ([]Input, func(), error) {
	if len(paths) == 0 {
		return []Input{{Name: "stdin", Reader: stdin}}, func() {}, nil
	}
	files := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	inputs := make([]Input, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, errors.InvalidInput("file", err.Error()).WithCause(err)
		}
		files = append(files, f)
		inputs = append(inputs, Input{Name: p, Reader: f})
	}
	return inputs, closeAll, nil
}

func writeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeText(w io.Writer, r *Report) error {
	mean := "n/a"
	if r.Mean != nil {
		mean = formatFloat(*r.Mean)
	}
	label := labelStyle(w)
	_, err := fmt.Fprintf(w, "%s %d\n%s %s\n%s %s\n%s %s\n",
		label("count:"), r.Count,
		label("sum:"), formatFloat(r.Sum),
		label("mean:"), mean,
		label("alternating_sum:"), formatFloat(r.AlternatingSum))
	return err
}

// labelStyle renders report labels bold when w is a terminal and leaves
// them plain otherwise.
func labelStyle(w io.Writer) func(string) string {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return func(s string) string { return s }
	}
	style := lipgloss.NewRenderer(f).NewStyle().Bold(true)
	return func(s string) string { return style.Render(s) }
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
