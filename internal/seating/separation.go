package seating

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a zero-based seat coordinate.
type Position struct {
	Row    int
	Column int
}

// ConflictRule reports whether two seats are too close for a separated pair.
type ConflictRule interface {
	Conflicts(a, b Position) bool
	String() string
}

// RuleFunc adapts a plain function to ConflictRule.
type RuleFunc struct {
	Name string
	Fn   func(a, b Position) bool
}

func (r RuleFunc) Conflicts(a, b Position) bool { return r.Fn(a, b) }
func (r RuleFunc) String() string               { return r.Name }

// Within conflicts when the seats are at most Distance rows and at most
// Distance columns apart.
type Within struct {
	Distance int
}

func (w Within) Conflicts(a, b Position) bool {
	return abs(a.Row-b.Row) <= w.Distance && abs(a.Column-b.Column) <= w.Distance
}

func (w Within) String() string {
	if w.Distance == 1 {
		return RuleAdjacent
	}
	return fmt.Sprintf("within:%d", w.Distance)
}

// Built-in rule names accepted in the text form of a separated pair.
const (
	RuleAdjacent   = "adjacent"
	RuleSameRow    = "same_row"
	RuleSameColumn = "same_column"
	rulePrefixNear = "within:"
)

var (
	sameRow    = RuleFunc{Name: RuleSameRow, Fn: func(a, b Position) bool { return a.Row == b.Row }}
	sameColumn = RuleFunc{Name: RuleSameColumn, Fn: func(a, b Position) bool { return a.Column == b.Column }}
)

// ParseRule resolves a rule name.  The empty name means adjacent.
func ParseRule(name string) (ConflictRule, error) {
	switch name = strings.ToLower(strings.TrimSpace(name)); {
	case name == "" || name == RuleAdjacent:
		return Within{Distance: 1}, nil
	case name == RuleSameRow:
		return sameRow, nil
	case name == RuleSameColumn:
		return sameColumn, nil
	case strings.HasPrefix(name, rulePrefixNear):
		d, err := strconv.Atoi(strings.TrimPrefix(name, rulePrefixNear))
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid distance in rule %q", name)
		}
		return Within{Distance: d}, nil
	}
	return nil, fmt.Errorf("unknown separation rule %q", name)
}

// SeparatedPair names two people whose seats must not satisfy Rule.
type SeparatedPair struct {
	First  string
	Second string
	Rule   ConflictRule
}

// NewSeparatedPair builds a pair with a caller-supplied rule.  A nil rule
// means adjacent.
func NewSeparatedPair(first, second string, rule ConflictRule) SeparatedPair {
	if rule == nil {
		rule = Within{Distance: 1}
	}
	return SeparatedPair{First: first, Second: second, Rule: rule}
}

// ParseSeparatedPair parses "<first> <second> [rule]".
func ParseSeparatedPair(text string) (SeparatedPair, error) {
	f := strings.Fields(text)
	if len(f) < 2 || len(f) > 3 {
		return SeparatedPair{}, fmt.Errorf("invalid separated pair %q, want \"<name> <name> [rule]\"", text)
	}
	var name string
	if len(f) == 3 {
		name = f[2]
	}
	rule, err := ParseRule(name)
	if err != nil {
		return SeparatedPair{}, fmt.Errorf("invalid separated pair %q: %w", text, err)
	}
	return SeparatedPair{First: f[0], Second: f[1], Rule: rule}, nil
}

func (p SeparatedPair) String() string {
	return p.First + " " + p.Second + " " + p.rule().String()
}

func (p SeparatedPair) rule() ConflictRule {
	if p.Rule == nil {
		return Within{Distance: 1}
	}
	return p.Rule
}

// Violated reports whether both people are seated in grid and their seats
// satisfy the pair's rule.  grid holds unmarked names in row-major order.
func (p SeparatedPair) Violated(grid []string, columns int) bool {
	a, ok := locate(grid, columns, p.First)
	if !ok {
		return false
	}
	b, ok := locate(grid, columns, p.Second)
	if !ok {
		return false
	}
	return p.rule().Conflicts(a, b)
}

func locate(grid []string, columns int, name string) (Position, bool) {
	for i, cell := range grid {
		if cell == name {
			return Position{Row: i / columns, Column: i % columns}, true
		}
	}
	return Position{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
