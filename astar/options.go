package astar

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Search outcomes reported to a Recorder.
const (
	OutcomeFound   = "found"
	OutcomeNoPath  = "no_path"
	OutcomeInvalid = "invalid"
	OutcomeAborted = "aborted"
)

// Recorder receives one observation per finished search.
type Recorder interface {
	ObserveSearch(outcome string, expanded int, elapsed time.Duration)
}

type Options struct {
	Logger         *zap.Logger
	MaxExpansions  int           // 0 means unbounded
	Timeout        time.Duration // 0 means unbounded
	Recorder       Recorder
	TracerProvider trace.TracerProvider
}

type Option func(*Options)

func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithMaxExpansions aborts the search once n nodes have been expanded
// without reaching the goal.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithTimeout aborts the search once d has elapsed since it started.
func WithTimeout(d time.Duration) Option {
	return func(options *Options) { options.Timeout = d }
}

func WithRecorder(recorder Recorder) Option {
	return func(options *Options) { options.Recorder = recorder }
}

func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(options *Options) { options.TracerProvider = provider }
}

func newOptions(options []Option) Options {
	searchOptions := Options{}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = zap.NewNop()
	}
	if searchOptions.TracerProvider == nil {
		searchOptions.TracerProvider = otel.GetTracerProvider()
	}
	return searchOptions
}
