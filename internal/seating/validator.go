package seating

// Valid reports whether grid satisfies c: every column has a group leader
// within the effective rows and no separated pair is seated in conflict.
// grid holds unmarked names in row-major order and is not modified.  An
// invalid config accepts nothing.
func Valid(grid []string, c *Config) bool {
	if c == nil || c.Validate() != nil {
		return false
	}
	return valid(grid, c, layoutOf(c), leaderSet(c))
}

func valid(grid []string, c *Config, lo layout, leaders map[string]bool) bool {
	if len(grid) < lo.rows*lo.columns {
		return false
	}
	for col := 0; col < lo.columns; col++ {
		if !columnHasLeader(grid, lo, col, leaders) {
			return false
		}
	}
	for _, sp := range c.SeparatedPairs {
		if sp.Violated(grid, lo.columns) {
			return false
		}
	}
	return true
}

func columnHasLeader(grid []string, lo layout, col int, leaders map[string]bool) bool {
	for row := 0; row < lo.rows; row++ {
		if leaders[grid[row*lo.columns+col]] {
			return true
		}
	}
	return false
}

func leaderSet(c *Config) map[string]bool {
	set := make(map[string]bool, len(c.GroupLeaders))
	for _, l := range c.GroupLeaders {
		set[l] = true
	}
	return set
}
