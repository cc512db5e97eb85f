package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	rwio "github.com/matzehuels/rankwidth/pkg/io"
	"github.com/matzehuels/rankwidth/pkg/pipeline"
	"github.com/matzehuels/rankwidth/pkg/render"
	"github.com/matzehuels/rankwidth/pkg/search"
)

// approxOpts holds the command-line flags for the approx command.
// Flags only override configuration file values when set explicitly.
type approxOpts struct {
	config      string  // TOML configuration file
	width       string  // width parameter: rank, f4rank, mm
	directed    bool    // read arcs
	d2u         bool    // read arcs, drop directions
	mm          bool    // shorthand for --width mm
	sparse      bool    // sparse GF(2) rank on adjacency lists
	temperature float64 // initial temperature
	delta       int     // threshold heuristic delta
	seed        int64   // search seed
	initialSeed int64   // initial decomposition seed
	adaptive    bool    // adaptive cooling
	timeLimit   int     // seconds
	output      string  // DOT output file, stdout when empty
	svg         string  // SVG output file
	json        string  // JSON report file
	tui         bool    // live view
	metricsAddr string  // Prometheus listen address
}

// flagAliases maps the short long-form spellings onto the canonical flag names.
var flagAliases = map[string]string{
	"td": "threshold-delta",
	"is": "initial-seed",
	"ac": "adaptive-cooling",
	"tl": "time-limit",
}

func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// approxCommand creates the approx command.
func (c *CLI) approxCommand() *cobra.Command {
	var opts approxOpts

	cmd := &cobra.Command{
		Use:   "approx [file]",
		Short: "Approximate the width of a graph in DIMACS format",
		Long: `Approximate rank-width, F4-rank-width or maximum-matching-width of a graph
by simulated annealing over branch decompositions.

The best decomposition is written in DOT format, to stdout unless --output is
given. Interrupting the search reports the best decomposition found so far.`,
		Example: `  rankwidth approx graph.dgf
  rankwidth approx --mm --td 2 -s 42 graph.dgf -o best.dot
  rankwidth approx -d --tl 60 --svg best.svg digraph.dgf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			po, err := opts.pipelineOptions(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runApprox(cmd.Context(), cmd, args[0], po, &opts)
		},
	}

	opts.register(cmd.Flags())

	cmd.MarkFlagsMutuallyExclusive("directed", "d2u")
	cmd.MarkFlagsMutuallyExclusive("width", "mm")

	return cmd
}

// register defines the approx flags on f.
func (a *approxOpts) register(f *pflag.FlagSet) {
	f.StringVarP(&a.config, "config", "c", "", "TOML configuration file")
	f.StringVar(&a.width, "width", pipeline.DefaultWidth, "width parameter: rank, f4rank, mm")
	f.BoolVarP(&a.directed, "directed", "d", false, "read a directed graph (rank-width becomes F4-rank-width)")
	f.BoolVar(&a.d2u, "d2u", false, "read a directed graph and ignore arc directions")
	f.BoolVar(&a.mm, "mm", false, "approximate maximum-matching-width")
	f.BoolVar(&a.sparse, "sparse", false, "compute rank-width on adjacency lists")
	f.Float64VarP(&a.temperature, "temperature", "t", pipeline.DefaultInitialTemperature, "initial temperature")
	f.IntVar(&a.delta, "threshold-delta", pipeline.DefaultThresholdDelta, "threshold heuristic delta (alias --td, -1 disables)")
	f.Int64VarP(&a.seed, "seed", "s", pipeline.DefaultSeed, "random seed (-1 draws one)")
	f.Int64Var(&a.initialSeed, "initial-seed", pipeline.DefaultSeed, "seed of the initial decomposition (alias --is, -1 uses the search seed)")
	f.BoolVar(&a.adaptive, "adaptive-cooling", false, "adapt the temperature to the distance from the best score (alias --ac)")
	f.IntVar(&a.timeLimit, "time-limit", 0, "stop after this many seconds (alias --tl, 0 runs until cooled)")
	f.StringVarP(&a.output, "output", "o", "", "write the best decomposition to this DOT file")
	f.StringVar(&a.svg, "svg", "", "render the best decomposition to this SVG file")
	f.StringVar(&a.json, "json", "", "write a JSON report of the run to this file")
	f.BoolVar(&a.tui, "tui", false, "show a live view of the search")
	f.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while searching")
	f.SetNormalizeFunc(normalizeFlag)
}

// pipelineOptions merges defaults, the configuration file and explicitly
// set flags, in that order.
func (a *approxOpts) pipelineOptions(flags *pflag.FlagSet) (pipeline.Options, error) {
	o := pipeline.DefaultOptions()
	if a.config != "" {
		if err := pipeline.LoadOptions(a.config, &o); err != nil {
			return o, err
		}
	}

	if flags.Changed("width") {
		o.Width = a.width
	}
	if flags.Changed("mm") && a.mm {
		o.Width = pipeline.WidthMM
	}
	switch {
	case flags.Changed("directed") && a.directed:
		o.Input = pipeline.InputDirected
	case flags.Changed("d2u") && a.d2u:
		o.Input = pipeline.InputD2U
	}
	if flags.Changed("sparse") {
		o.Sparse = a.sparse
	}
	if flags.Changed("temperature") {
		o.InitialTemperature = a.temperature
	}
	if flags.Changed("threshold-delta") {
		o.ThresholdDelta = a.delta
	}
	if flags.Changed("seed") {
		o.Seed = a.seed
	}
	if flags.Changed("initial-seed") {
		o.InitialSeed = a.initialSeed
	}
	if flags.Changed("adaptive-cooling") {
		o.AdaptiveCooling = a.adaptive
	}
	if flags.Changed("time-limit") {
		o.TimeLimit = a.timeLimit
	}
	return o, nil
}

func (c *CLI) runApprox(ctx context.Context, cmd *cobra.Command, input string, po pipeline.Options, a *approxOpts) error {
	runID := uuid.NewString()
	logger := c.Logger.With("run", runID[:8])

	if a.metricsAddr != "" {
		addr, stop, err := serveMetrics(a.metricsAddr, logger)
		if err != nil {
			return err
		}
		defer stop()
		logger.Infof("Serving metrics on http://%s/metrics", addr)
	}

	var (
		res *pipeline.Result
		err error
	)
	if a.tui {
		runner := pipeline.NewRunner(newLogger(io.Discard, LogInfo))
		res, err = runWithTUI(ctx, runner, input, po, cmd.ErrOrStderr())
	} else {
		res, err = pipeline.NewRunner(logger).Run(ctx, input, po)
	}
	if err != nil {
		return fmt.Errorf("approx %s: %w", input, err)
	}

	summary := cmd.OutOrStdout()
	if a.output == "" {
		summary = cmd.ErrOrStderr()
	}
	if ctx.Err() != nil {
		printWarning(summary, "Search interrupted, reporting the best decomposition found")
	}
	printResult(summary, input, res)
	if a.json != "" {
		if err := rwio.ExportJSON(rwio.NewReport(runID, res), a.json); err != nil {
			return err
		}
		printFile(summary, a.json)
	}
	if res.Trivial {
		return nil
	}

	dot := decompositionDOT(runID, res)
	if a.output == "" {
		if _, err := io.WriteString(cmd.OutOrStdout(), dot); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(a.output, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.output, err)
		}
		printFile(summary, a.output)
	}

	if a.svg != "" {
		prog := newProgress(logger)
		data, err := render.RenderSVG(context.WithoutCancel(ctx), dot)
		if err != nil {
			return fmt.Errorf("render %s: %w", a.svg, err)
		}
		if err := os.WriteFile(a.svg, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.svg, err)
		}
		prog.done("Rendered " + a.svg)
		printFile(summary, a.svg)
	}
	return nil
}

// decompositionDOT prefixes the decomposition with a comment naming the run.
func decompositionDOT(runID string, res *pipeline.Result) string {
	return fmt.Sprintf("// %s run %s: %s %d (score %d)\n%s",
		appName, runID, res.Function, res.Width, res.Score, res.Decomposition)
}

func printResult(w io.Writer, input string, res *pipeline.Result) {
	name := filepath.Base(input)
	if res.Trivial {
		printSuccess(w, "%s of %s: %s", res.Function, name, StyleNumber.Render("0"))
		printDetail(w, "%s", res.Reason)
		return
	}
	printSuccess(w, "%s of %s: %s", res.Function, name, StyleNumber.Render(strconv.Itoa(res.Width)))
	printKeyValue(w, "vertices", strconv.Itoa(res.Vertices))
	printKeyValue(w, "score", strconv.FormatInt(res.Score, 10))
	printKeyValue(w, "iterations", strconv.FormatInt(res.Iterations, 10))
	printKeyValue(w, "elapsed", res.Elapsed.Round(time.Millisecond).String())
	if len(res.Progress) > 1 {
		printDetail(w, "widths: %s", progressLine(res.Progress))
	}
}

// progressLine formats best widths over time, e.g. "9 (0s) → 7 (1.2s)".
func progressLine(progress []search.Progress) string {
	parts := make([]string, len(progress))
	for i, p := range progress {
		parts[i] = fmt.Sprintf("%d (%s)", p.Width, p.Elapsed.Round(100*time.Millisecond))
	}
	return strings.Join(parts, " "+iconArrow+" ")
}
