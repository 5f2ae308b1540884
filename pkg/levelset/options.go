package levelset

import "runtime"

// Option configures field construction.
type Option func(*config)

type config struct {
	exactBand   int
	sweepPasses int
	workers     int
}

func defaultConfig() config {
	return config{
		exactBand:   1,
		sweepPasses: 2,
		workers:     runtime.NumCPU(),
	}
}

// WithExactBand sets the half-width, in cells, of the band around each
// triangle seeded with exact distances. A wider band trades seeding work for
// sweep accuracy further from the surface. Values below 1 are ignored.
// Default 1.
func WithExactBand(cells int) Option {
	return func(c *config) {
		if cells >= 1 {
			c.exactBand = cells
		}
	}
}

// WithSweepPasses caps the number of sweep rounds. Each round runs all eight
// octant orderings once; sweeping stops early when a round changes nothing.
// Values below 1 are ignored. Default 2.
func WithSweepPasses(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.sweepPasses = n
		}
	}
}

// WithWorkers sets the number of goroutines used for seeding and sign
// classification. The result does not depend on the worker count. Values
// below 1 are ignored. Default runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.workers = n
		}
	}
}
