package spectral

import (
	"log/slog"

	"github.com/phasorlab/spectral/carrier"
	"github.com/phasorlab/spectral/modem"
	"github.com/phasorlab/spectral/rng"
)

type options struct {
	dim     int
	seed    uint32
	plan    carrier.Plan
	logger  *Logger
	metrics MetricsCollector
}

// Option configures encode and decode behavior.
type Option func(*options)

// WithDim sets the vector dimension. Required for Encode: the dimension
// bounds carrier capacity and is recorded in the manifest.
func WithDim(dim int) Option {
	return func(o *options) {
		o.dim = dim
	}
}

// WithSeed sets the numeric seed for spectrum synthesis and carrier
// selection. The zero seed is valid.
func WithSeed(seed uint32) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithSeedString sets the seed from text via the canonical FNV-1a
// derivation. Equivalent to WithSeed(rng.SeedFromString(text)).
func WithSeedString(text string) Option {
	return func(o *options) {
		o.seed = rng.SeedFromString(text)
	}
}

// WithPlan sets the carrier plan. Defaults to carrier.Auto, which uses
// exactly as many bins as the payload needs.
func WithPlan(plan carrier.Plan) Option {
	return func(o *options) {
		o.plan = plan
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := spectral.NewJSONLogger(slog.LevelDebug)
//	enc, _ := spectral.Encode(payload, spectral.WithDim(1024), spectral.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetrics configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &spectral.BasicMetricsCollector{}
//	enc, _ := spectral.Encode(payload, spectral.WithDim(1024), spectral.WithMetrics(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Encodes: %d, Avg latency: %dns\n", stats.EncodeCount, stats.EncodeAvgNanos)
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		plan:    carrier.Auto,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) config() modem.Config {
	return modem.Config{Dim: o.dim, Seed: o.seed, Plan: o.plan}
}
