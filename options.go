package ccrextract

import (
	"runtime"

	"go.uber.org/zap"
)

// Option configures the Extractor.
type Option func(*Options)

// Options holds all configuration for the Extractor.
type Options struct {
	// CollectDiagnostics controls whether per-field diagnostics (date roles
	// with no matching timestamp, unknown actor references) are recorded on
	// the Result. Disabling it only suppresses bookkeeping; extraction
	// behavior is identical.
	CollectDiagnostics bool

	// WorkerCount is the number of workers used for batch extraction.
	WorkerCount int

	// EpochCacheSize is the capacity of the timestamp parse cache.
	EpochCacheSize int

	// Logger receives low-severity extraction logs.
	Logger *zap.Logger
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		CollectDiagnostics: true,
		WorkerCount:        runtime.NumCPU(),
		EpochCacheSize:     1024,
		Logger:             zap.NewNop(),
	}
}

// WithDiagnostics controls diagnostic collection on extraction results.
func WithDiagnostics(enable bool) Option {
	return func(o *Options) {
		o.CollectDiagnostics = enable
	}
}

// WithWorkerCount sets the number of workers for batch extraction.
// Values <= 0 fall back to runtime.NumCPU().
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		o.WorkerCount = n
	}
}

// WithEpochCacheSize sets the capacity of the timestamp parse cache.
func WithEpochCacheSize(n int) Option {
	return func(o *Options) {
		o.EpochCacheSize = n
	}
}

// WithLogger sets the logger used for low-severity extraction logs.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}
