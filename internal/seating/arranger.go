package seating

import (
	"context"
	"math/rand"
	"slices"
)

// attempt is one candidate arrangement before validation.
type attempt struct {
	grid  []string
	lucky string
}

// arrange performs one randomized placement.  It works on copies of the
// roster and of the free last-row columns, so a rejected attempt leaves
// nothing behind for the next one.
func arrange(rd *rand.Rand, c *Config, lo layout, lastRow []int) attempt {
	names := slices.Clone(c.Names)

	// The lucky person is drawn from the back of the roster: the last shuffle
	// block plus the partial row.
	var lucky string
	if c.Lucky {
		start := max(0, len(names)-lo.blockSize-lo.overflow)
		i := start + rd.Intn(len(names)-start)
		lucky = names[i]
		names = slices.Delete(names, i, i+1)
	}

	for from := 0; from < len(names); from += lo.blockSize {
		block := names[from:min(from+lo.blockSize, len(names))]
		rd.Shuffle(len(block), func(i, j int) { block[i], block[j] = block[j], block[i] })
	}

	grid := make([]string, lo.seatCount)
	if lo.overflow == 0 {
		copy(grid, names[:lo.seatCount])
		return attempt{grid: grid, lucky: lucky}
	}

	front := lo.seatCount - lo.columns
	copy(grid, names[:front])
	for i := front; i < lo.seatCount; i++ {
		grid[i] = EmptySeat
	}
	free := slices.Clone(lastRow)
	for _, name := range names[front:lo.placed] {
		k := rd.Intn(len(free))
		grid[front+free[k]-1] = name
		free = slices.Delete(free, k, k+1)
	}
	return attempt{grid: grid, lucky: lucky}
}

// leaderCheckEvery is how many draws markLeaders makes between context checks.
const leaderCheckEvery = 1024

// markLeaders picks, for every column, a random row holding a group leader and
// marks that cell.  It is rejection sampling and only terminates when each
// column has a leader within the effective rows, which valid guarantees; the
// context bounds it otherwise.
func markLeaders(ctx context.Context, rd *rand.Rand, grid []string, lo layout, leaders map[string]bool) error {
	for col := 0; col < lo.columns; col++ {
		for draws := 1; ; draws++ {
			i := rd.Intn(lo.rows)*lo.columns + col
			if leaders[grid[i]] {
				grid[i] = MarkLeader(grid[i])
				break
			}
			if draws%leaderCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
