package solver

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rfielding/modalmu/transformer"
)

type config struct {
	log             logrus.FieldLogger
	metrics         *Metrics
	nodesize        int
	cachesize       int
	checkInvariants bool
	initial         string
}

// Option configures a check.
type Option func(c *config) error

// WithLogger sets the logger; the default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) error {
		c.log = log
		return nil
	}
}

// WithMetrics records solver activity into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithNodeSize sets the initial node table size of the decision diagram.
func WithNodeSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.Errorf("node size must be positive, got %d", n)
		}
		c.nodesize = n
		return nil
	}
}

// WithCacheSize sets the initial cache size of the decision diagram.
func WithCacheSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.Errorf("cache size must be positive, got %d", n)
		}
		c.cachesize = n
		return nil
	}
}

// WithInvariantChecks verifies that every transformer the solver stores is
// monotone. It is slow and meant for tests and debugging.
func WithInvariantChecks() Option {
	return func(c *config) error {
		c.checkInvariants = true
		return nil
	}
}

// WithInitial checks from process p instead of the system's initial process.
func WithInitial(p string) Option {
	return func(c *config) error {
		c.initial = p
		return nil
	}
}

var defaults = []Option{
	func(c *config) error {
		if c.log == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			c.log = l
		}
		return nil
	},
	func(c *config) error {
		if c.nodesize == 0 {
			c.nodesize = transformer.DefaultNodeSize
		}
		if c.cachesize == 0 {
			c.cachesize = transformer.DefaultCacheSize
		}
		return nil
	},
}

func newConfig(options []Option) (*config, error) {
	c := &config{}
	for _, option := range with(options, defaults...) {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// with returns options followed by extra without writing into the spare
// capacity of options, which belongs to the caller.
func with(options []Option, extra ...Option) []Option {
	out := make([]Option, 0, len(options)+len(extra))
	out = append(out, options...)
	return append(out, extra...)
}
