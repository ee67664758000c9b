package seating

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// DefaultTimeout bounds a single generation.
const DefaultTimeout = 3 * time.Second

// Generator runs the arrange-and-validate loop under a time budget and an
// optional attempt budget.  A Generator holds no per-call state and is safe
// for concurrent use.
type Generator struct {
	timeout     time.Duration
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout sets the wall-clock budget of one generation.  A non-positive
// value leaves only the caller's context as a bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// WithMaxAttempts caps the number of arrangements tried.  Zero means no cap.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = max(0, n) }
}

// NewGenerator returns a Generator with a DefaultTimeout budget.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{timeout: DefaultTimeout}
	for _, o := range opts {
		o(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

// Generate is NewGenerator().Generate.
func Generate(ctx context.Context, c *Config, seed string) (*SeatTable, error) {
	return defaultGenerator.Generate(ctx, c, seed)
}

// Generate produces a seat table for c, reproducibly from seed.
//
// It returns an *IllegalConfigError when c is invalid and ErrGenerationTimeout
// when no valid arrangement was found within budget.  Cancellation of ctx by
// the caller is returned as is.
func (g *Generator) Generate(ctx context.Context, c *Config, seed string) (*SeatTable, error) {
	if c == nil {
		return nil, illegal("config", "cannot be nil")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	s := ResolveSeed(seed)
	rd := rand.New(rand.NewSource(s.Value))
	lo := layoutOf(c)
	lastRow := availableLastRow(c)
	leaders := leaderSet(c)

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, budgetError(err, n)
		}
		if g.maxAttempts > 0 && n >= g.maxAttempts {
			return nil, fmt.Errorf("%w: no valid arrangement in %d attempts", ErrGenerationTimeout, n)
		}
		a := arrange(rd, c, lo, lastRow)
		if !valid(a.grid, c, lo, leaders) {
			continue
		}
		if err := markLeaders(ctx, rd, a.grid, lo, leaders); err != nil {
			return nil, budgetError(err, n+1)
		}
		return newSeatTable(a.grid, lo.columns, s, a.lucky), nil
	}
}

func budgetError(err error, attempts int) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: no valid arrangement after %d attempts", ErrGenerationTimeout, attempts)
	}
	return err
}

// GenerateEmpty returns a preview table of RowCount x ColumnCount empty seats.
// Only the dimensions of c are looked at.
func GenerateEmpty(c *Config) (*SeatTable, error) {
	var p problems
	if c == nil {
		return nil, illegal("config", "cannot be nil")
	}
	checkRowCount(c, &p)
	checkColumnCount(c, &p)
	if err := p.err(); err != nil {
		return nil, err
	}
	cells := make([]string, c.RowCount*c.ColumnCount)
	for i := range cells {
		cells[i] = EmptySeat
	}
	return newSeatTable(cells, c.ColumnCount, Seed{Label: EmptySeat}, ""), nil
}
