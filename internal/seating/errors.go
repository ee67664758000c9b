package seating

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGenerationTimeout is returned when no valid arrangement was found within
// the generator's time or attempt budget.  Callers may retry with another seed
// or relax the constraints.
var ErrGenerationTimeout = errors.New("seat table generation timed out, check the config or use another seed")

// IllegalConfigError reports every problem found in a seating config at once.
// Each entry of Problems is prefixed with the name of the offending field.
type IllegalConfigError struct {
	Problems []string
}

func (e *IllegalConfigError) Error() string {
	if len(e.Problems) == 1 {
		return "illegal seating config: " + e.Problems[0]
	}
	return fmt.Sprintf("illegal seating config (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// problems accumulates validation messages.  The zero value is ready to use.
type problems []string

func (p *problems) addf(field, format string, args ...any) {
	*p = append(*p, field+": "+fmt.Sprintf(format, args...))
}

// err returns nil when nothing was collected.
func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &IllegalConfigError{Problems: p}
}

func illegal(field, format string, args ...any) error {
	var p problems
	p.addf(field, format, args...)
	return p.err()
}
