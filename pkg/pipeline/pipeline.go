// Package pipeline wires graph loading, cut-function selection and the
// annealing search into one run.
//
// The CLI and tests share this package so that option handling and the
// choice of graph view behave identically everywhere.
//
// # Usage
//
//	opts := pipeline.DefaultOptions()
//	if err := pipeline.LoadOptions("rankwidth.toml", &opts); err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Run(ctx, "graph.dgf", opts)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Width)
//
// # Configuration File
//
// Options can be read from TOML:
//
//	width = "mm"
//	threshold_delta = 2
//	seed = 42
//	time_limit = 60
package pipeline

import (
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/rankwidth/pkg/cache"
	"github.com/matzehuels/rankwidth/pkg/errors"
	"github.com/matzehuels/rankwidth/pkg/search"
)

// =============================================================================
// Default Values
// =============================================================================

// Width parameters.
const (
	WidthRank   = "rank"
	WidthF4Rank = "f4rank"
	WidthMM     = "mm"
)

// Input modes.
const (
	InputUndirected = "undirected"
	InputDirected   = "directed"
	InputD2U        = "d2u" // directed file read as an undirected graph
)

const (
	DefaultWidth              = WidthRank
	DefaultInput              = InputUndirected
	DefaultInitialTemperature = search.DefaultInitialTemperature
	DefaultBatchSize          = search.DefaultBatchSize
	DefaultCooling            = search.DefaultCooling
	DefaultMinTemperature     = search.DefaultMinTemperature
	DefaultCacheCapacity      = cache.DefaultCapacity

	// DefaultThresholdDelta disables the threshold heuristic.
	DefaultThresholdDelta = -1

	// DefaultSeed draws a random seed.
	DefaultSeed = -1
)

// ValidWidths is the set of supported width parameters.
var ValidWidths = map[string]bool{
	WidthRank:   true,
	WidthF4Rank: true,
	WidthMM:     true,
}

// ValidInputs is the set of supported input modes.
var ValidInputs = map[string]bool{
	InputUndirected: true,
	InputDirected:   true,
	InputD2U:        true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one approximation run.
type Options struct {
	Width  string `toml:"width"`
	Input  string `toml:"input"`
	Sparse bool   `toml:"sparse"` // sparse GF(2) rank on adjacency lists

	InitialTemperature float64 `toml:"initial_temperature"`
	AdaptiveCooling    bool    `toml:"adaptive_cooling"`
	BatchSize          int     `toml:"batch_size"`
	Cooling            float64 `toml:"cooling"`
	MinTemperature     float64 `toml:"min_temperature"`

	ThresholdDelta int   `toml:"threshold_delta"` // < 0 disables the heuristic
	Seed           int64 `toml:"seed"`            // < 0 draws a random seed
	InitialSeed    int64 `toml:"initial_seed"`    // < 0 reuses the search RNG
	TimeLimit      int   `toml:"time_limit"`      // seconds, 0 runs until cooled
	CacheCapacity  int   `toml:"cache_capacity"`
	Parallelism    int   `toml:"parallelism"`

	Logger *log.Logger `toml:"-"`
}

// DefaultOptions returns options with every default applied. Fields whose
// zero value is meaningful (seeds, threshold delta) are only set here.
func DefaultOptions() Options {
	o := Options{
		ThresholdDelta: DefaultThresholdDelta,
		Seed:           DefaultSeed,
		InitialSeed:    DefaultSeed,
	}
	o.SetDefaults()
	return o
}

// SetDefaults fills fields left at their zero value.
func (o *Options) SetDefaults() {
	if o.Width == "" {
		o.Width = DefaultWidth
	}
	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.InitialTemperature == 0 {
		o.InitialTemperature = DefaultInitialTemperature
	}
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Cooling == 0 {
		o.Cooling = DefaultCooling
	}
	if o.MinTemperature == 0 {
		o.MinTemperature = DefaultMinTemperature
	}
	if o.CacheCapacity == 0 {
		o.CacheCapacity = DefaultCacheCapacity
	}
	if o.Parallelism == 0 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}
}

// EffectiveWidth returns the width parameter actually approximated:
// rank-width of a directed input is F4-rank-width.
func (o *Options) EffectiveWidth() string {
	if o.Input == InputDirected && o.Width == WidthRank {
		return WidthF4Rank
	}
	return o.Width
}

// Validate checks option values and their combinations.
func (o *Options) Validate() error {
	if !ValidWidths[o.Width] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid width %q (must be one of: rank, f4rank, mm)", o.Width)
	}
	if !ValidInputs[o.Input] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid input %q (must be one of: undirected, directed, d2u)", o.Input)
	}
	if o.Input == InputDirected && o.Width == WidthMM {
		return errors.New(errors.ErrCodeModeMismatch,
			"maximum-matching-width cannot be used with directed graphs; convert with input d2u")
	}
	if o.Sparse && o.EffectiveWidth() != WidthRank {
		return errors.New(errors.ErrCodeInvalidConfig, "sparse mode only supports rank-width")
	}
	if o.InitialTemperature <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "initial temperature must be positive, got %g", o.InitialTemperature)
	}
	if o.BatchSize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "batch size must be positive, got %d", o.BatchSize)
	}
	if o.Cooling <= 0 || o.Cooling >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "cooling factor must be in (0, 1), got %g", o.Cooling)
	}
	if o.MinTemperature <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "minimum temperature must be positive, got %g", o.MinTemperature)
	}
	if o.ThresholdDelta < -1 {
		return errors.New(errors.ErrCodeInvalidConfig, "threshold delta must be ≥ 0 or -1 to disable, got %d", o.ThresholdDelta)
	}
	if o.TimeLimit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "time limit must not be negative, got %d", o.TimeLimit)
	}
	if o.CacheCapacity < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache capacity must be positive, got %d", o.CacheCapacity)
	}
	if o.Parallelism < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "parallelism must be positive, got %d", o.Parallelism)
	}
	return nil
}

// SearchOptions returns the search context options.
func (o *Options) SearchOptions() search.Options {
	return search.Options{
		ThresholdDelta: o.ThresholdDelta,
		Seed:           o.Seed,
		InitialSeed:    o.InitialSeed,
		CacheCapacity:  o.CacheCapacity,
		Parallelism:    o.Parallelism,
	}
}

// LoadOptions decodes a TOML file on top of o. Keys absent from the file
// keep their current values; unknown keys are an error.
func LoadOptions(path string, o *Options) error {
	md, err := toml.DecodeFile(path, o)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "config file %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}
