package pathfind

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type options struct {
	ctx            context.Context
	observer       Observer
	roundSnapshots bool
	maxRounds      int
	logger         logrus.FieldLogger
}

// Option configures a search
type Option func(*options)

func defaultOptions() options {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return options{
		ctx:    context.Background(),
		logger: quiet,
	}
}

// WithObserver attaches a visualization sink
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithRoundSnapshots makes the observer see every propagation round, not
// just the start and the end
func WithRoundSnapshots(enabled bool) Option {
	return func(opts *options) { opts.roundSnapshots = enabled }
}

// WithMaxRounds caps the number of propagation rounds. Zero or less means
// rows×cols, which is enough for any simple path.
func WithMaxRounds(n int) Option {
	return func(opts *options) { opts.maxRounds = n }
}

// WithLogger sets the logger used for search diagnostics
func WithLogger(l logrus.FieldLogger) Option {
	return func(opts *options) {
		if l != nil {
			opts.logger = l
		}
	}
}

// WithContext makes the search abort between rounds once ctx is done
func WithContext(ctx context.Context) Option {
	return func(opts *options) {
		if ctx != nil {
			opts.ctx = ctx
		}
	}
}
