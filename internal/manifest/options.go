package manifest

import "github.com/rs/zerolog"

// Option configures optional behavior of a Builder.
type Option func(*options)

type options struct {
	logger        zerolog.Logger
	allowEmpty    bool
	absolutePaths bool
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}

// WithLogger sets the logger used to report pairing progress and orphaned reads.
// If not provided, nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAllowEmpty makes an empty input produce a header-only manifest
// instead of an InputNotFoundError.
func WithAllowEmpty(allow bool) Option {
	return func(o *options) {
		o.allowEmpty = allow
	}
}

// WithAbsolutePaths rewrites every read path to an absolute path before pairing.
func WithAbsolutePaths(abs bool) Option {
	return func(o *options) {
		o.absolutePaths = abs
	}
}
