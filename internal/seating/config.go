package seating

import (
	"slices"
	"strings"
)

const (
	// EmptySeat marks an unoccupied seat.
	EmptySeat = "-"
	// MaxColumnCount is the widest grid an exported sheet can hold.
	MaxColumnCount = 20
	// MaxRowCount bounds the grid depth so that a table stays a few
	// thousand cells at most.
	MaxRowCount = 200
)

// Field names used in problem messages.  They match the keys of RawConfig.
const (
	fieldRowCount          = "row_count"
	fieldColumnCount       = "column_count"
	fieldRandomBetweenRows = "random_between_rows"
	fieldDisabledLastRow   = "last_row_pos_cannot_be_chosen"
	fieldNames             = "person_sort_by_height"
	fieldGroupLeaders      = "group_leader_list"
	fieldSeparatedPairs    = "separate_list"
)

// Config is the input of a generation.  Names are ordered front to back
// (typically by height) and the order matters: shuffling only happens inside
// blocks of RandomBetweenRows rows.
//
// The engine never modifies a Config.
type Config struct {
	RowCount                 int
	ColumnCount              int
	RandomBetweenRows        int
	DisabledLastRowPositions []int // 1-based columns
	Names                    []string
	GroupLeaders             []string
	SeparatedPairs           []SeparatedPair
	Lucky                    bool
}

// check validates one aspect of a Config.  fields lists the inputs it reads
// so that checks depending on an unparsable field can be skipped.
type check struct {
	fields []string
	run    func(c *Config, p *problems)
}

var checks = []check{
	{[]string{fieldRowCount}, checkRowCount},
	{[]string{fieldColumnCount}, checkColumnCount},
	{[]string{fieldRandomBetweenRows}, func(c *Config, p *problems) {
		if c.RandomBetweenRows <= 0 {
			p.addf(fieldRandomBetweenRows, "must be positive, got %d", c.RandomBetweenRows)
		}
	}},
	{[]string{fieldDisabledLastRow, fieldColumnCount}, checkDisabledPositions},
	{[]string{fieldNames}, checkNames},
	{[]string{fieldGroupLeaders, fieldNames}, checkGroupLeaders},
	{[]string{fieldSeparatedPairs, fieldNames}, checkSeparatedPairs},
	{[]string{fieldRowCount, fieldColumnCount, fieldNames, fieldDisabledLastRow}, checkCapacity},
}

// Validate checks every field and reports all problems in one
// *IllegalConfigError, or returns nil.
func (c *Config) Validate() error {
	return c.validate(nil)
}

func (c *Config) validate(skip map[string]bool) error {
	var p problems
	for _, ch := range checks {
		if slices.ContainsFunc(ch.fields, func(f string) bool { return skip[f] }) {
			continue
		}
		ch.run(c, &p)
	}
	return p.err()
}

func checkRowCount(c *Config, p *problems) {
	if c.RowCount <= 0 {
		p.addf(fieldRowCount, "must be positive, got %d", c.RowCount)
	} else if c.RowCount > MaxRowCount {
		p.addf(fieldRowCount, "cannot be larger than %d, got %d", MaxRowCount, c.RowCount)
	}
}

func checkColumnCount(c *Config, p *problems) {
	if c.ColumnCount <= 0 {
		p.addf(fieldColumnCount, "must be positive, got %d", c.ColumnCount)
	} else if c.ColumnCount > MaxColumnCount {
		p.addf(fieldColumnCount, "cannot be larger than %d, got %d", MaxColumnCount, c.ColumnCount)
	}
}

func checkDisabledPositions(c *Config, p *problems) {
	if c.ColumnCount <= 0 {
		return
	}
	for _, pos := range c.DisabledLastRowPositions {
		if pos < 1 || pos > c.ColumnCount {
			p.addf(fieldDisabledLastRow, "position %d is outside 1..%d", pos, c.ColumnCount)
		}
	}
}

func checkNames(c *Config, p *problems) {
	if len(c.Names) == 0 {
		p.addf(fieldNames, "cannot be empty")
		return
	}
	seen := make(map[string]bool, len(c.Names))
	for _, n := range c.Names {
		switch {
		case strings.TrimSpace(n) == "":
			p.addf(fieldNames, "contains a blank name")
			continue
		case n == EmptySeat:
			p.addf(fieldNames, "cannot contain the empty seat placeholder %q", EmptySeat)
		case IsLeaderMarked(n):
			p.addf(fieldNames, "name %q looks like a marked group leader", n)
		}
		if seen[n] {
			p.addf(fieldNames, "duplicate name %q", n)
		}
		seen[n] = true
	}
}

func checkGroupLeaders(c *Config, p *problems) {
	if len(c.GroupLeaders) == 0 {
		p.addf(fieldGroupLeaders, "cannot be empty")
		return
	}
	for _, l := range c.GroupLeaders {
		switch {
		case l == EmptySeat:
			p.addf(fieldGroupLeaders, "cannot contain the empty seat placeholder %q", EmptySeat)
		case !slices.Contains(c.Names, l):
			p.addf(fieldGroupLeaders, "%q is not in the name list", l)
		}
	}
}

func checkSeparatedPairs(c *Config, p *problems) {
	for _, sp := range c.SeparatedPairs {
		if sp.First == sp.Second {
			p.addf(fieldSeparatedPairs, "pair %q names the same person twice", sp.String())
			continue
		}
		for _, n := range []string{sp.First, sp.Second} {
			if !slices.Contains(c.Names, n) {
				p.addf(fieldSeparatedPairs, "%q is not in the name list", n)
			}
		}
	}
}

// checkCapacity makes sure the roster fits the grid and that the partial last
// row has enough usable seats.
func checkCapacity(c *Config, p *problems) {
	if c.RowCount <= 0 || c.ColumnCount <= 0 || len(c.Names) == 0 {
		return
	}
	placed := len(c.Names)
	if c.Lucky {
		placed--
	}
	if placed < 1 {
		p.addf(fieldNames, "nobody is left to seat once the lucky person is exempted")
		return
	}
	if needed := (placed + c.ColumnCount - 1) / c.ColumnCount; needed > c.RowCount {
		p.addf(fieldNames, "%d people need %d rows of %d seats, got %d", placed, needed, c.ColumnCount, c.RowCount)
		return
	}
	if overflow := placed % c.ColumnCount; overflow > 0 {
		if free := len(availableLastRow(c)); free < overflow {
			p.addf(fieldDisabledLastRow, "available last row seats not enough: %d free for %d people", free, overflow)
		}
	}
}

// availableLastRow lists the 1-based columns usable in a partial last row.
func availableLastRow(c *Config) []int {
	out := make([]int, 0, c.ColumnCount)
	for col := 1; col <= c.ColumnCount; col++ {
		if !slices.Contains(c.DisabledLastRowPositions, col) {
			out = append(out, col)
		}
	}
	return out
}

// layout is the geometry of one generation, derived from a valid Config.
type layout struct {
	rows      int // effective row count
	columns   int
	blockSize int // people shuffled together
	seatCount int
	placed    int // people that get a seat
	overflow  int // people in a partial last row
}

func layoutOf(c *Config) layout {
	placed := len(c.Names)
	if c.Lucky {
		placed--
	}
	cols := c.ColumnCount
	rows := min(c.RowCount, (placed+cols-1)/cols)
	seats := rows * cols
	overflow := 0
	if placed <= seats {
		overflow = placed % cols
	}
	return layout{
		rows:      rows,
		columns:   cols,
		blockSize: cols * min(c.RandomBetweenRows, rows),
		seatCount: seats,
		placed:    placed,
		overflow:  overflow,
	}
}
