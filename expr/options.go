// SPDX-License-Identifier: MIT

package expr

import (
	"go.uber.org/zap"
)

const (
	// DefaultMaxRewrites bounds the rule applications of one construction.
	DefaultMaxRewrites = 10000

	// DefaultCacheSize is the number of interned instances kept by the engine.
	DefaultCacheSize = 4096
)

// Options configures an Engine.
type Options struct {
	Logger      *zap.Logger // debug trace of rule applications; Nop by default
	Observer    Observer    // metrics hooks; NopObserver by default
	MaxRewrites int         // > 0
	CacheSize   int         // 0 disables interning
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		Logger:      zap.NewNop(),
		Observer:    NopObserver{},
		MaxRewrites: DefaultMaxRewrites,
		CacheSize:   DefaultCacheSize,
	}
}

// WithLogger sets the logger. Panics if l is nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("expr: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithObserver sets the metrics observer. Panics if obs is nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("expr: WithObserver(nil)")
	}
	return func(o *Options) { o.Observer = obs }
}

// WithMaxRewrites bounds the rule applications per construction.
// Panics if n <= 0.
func WithMaxRewrites(n int) Option {
	if n <= 0 {
		panic("expr: WithMaxRewrites: n must be > 0")
	}
	return func(o *Options) { o.MaxRewrites = n }
}

// WithCacheSize sets the instance cache capacity; 0 disables interning.
// Panics if n < 0.
func WithCacheSize(n int) Option {
	if n < 0 {
		panic("expr: WithCacheSize: n must be >= 0")
	}
	return func(o *Options) { o.CacheSize = n }
}
