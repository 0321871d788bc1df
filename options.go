package circbuf

import "github.com/rs/zerolog"

type Option func(*RingBuffer)

// WithLogger sets the logger Print writes to. The global zerolog logger is
// used by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *RingBuffer) {
		r.logger = logger
	}
}
