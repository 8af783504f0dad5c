package occultation

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/reflux/basis"
)

// Internal panic messages (no magic strings).
const (
	panicNilBasis  = "occultation: WithBasis: nil change of basis"
	panicNilCache  = "occultation: WithCache: nil cache"
	panicNilLogger = "occultation: WithLogger: nil logger"
)

// Option configures a Solver. Constructors panic only on nonsensical values
// (programmer error).
type Option func(*options)

type options struct {
	cob   *basis.ChangeOfBasis // precomputed basis; wins over cache
	cache *basis.Cache         // shared per-degree cache
	log   *zap.Logger          // zap.NewNop() by default
}

func defaultOptions() options {
	return options{log: zap.NewNop()}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithBasis reuses an already built change of basis. Its degree must match
// the solver's, otherwise New returns ErrDegreeMismatch.
func WithBasis(cob *basis.ChangeOfBasis) Option {
	if cob == nil {
		panic(panicNilBasis)
	}

	return func(o *options) { o.cob = cob }
}

// WithCache resolves the change of basis through c, so that solvers of the
// same degree share a single construction.
func WithCache(c *basis.Cache) Option {
	if c == nil {
		panic(panicNilCache)
	}

	return func(o *options) { o.cache = c }
}

// WithLogger sets the structured logger. Default: zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *options) { o.log = l }
}
