package seating

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// MarkLeader wraps a name to show it is the group leader of its column.
func MarkLeader(name string) string { return "*" + name + "*" }

// IsLeaderMarked reports whether cell was produced by MarkLeader.
func IsLeaderMarked(cell string) bool {
	return len(cell) >= 2 && strings.HasPrefix(cell, "*") && strings.HasSuffix(cell, "*")
}

// UnmarkLeader returns the plain name of a cell.
func UnmarkLeader(cell string) string {
	if IsLeaderMarked(cell) {
		return cell[1 : len(cell)-1]
	}
	return cell
}

// SeatTable is an accepted seating grid.  It is never modified after
// construction; accessors hand out copies.
type SeatTable struct {
	cells       []string
	columns     int
	seed        int64
	seedLabel   string
	luckyPerson string
}

func newSeatTable(cells []string, columns int, seed Seed, lucky string) *SeatTable {
	return &SeatTable{cells: cells, columns: columns, seed: seed.Value, seedLabel: seed.Label, luckyPerson: lucky}
}

// Cells returns the grid in row-major order.
func (t *SeatTable) Cells() []string { return slices.Clone(t.cells) }

func (t *SeatTable) ColumnCount() int { return t.columns }

func (t *SeatTable) RowCount() int {
	if t.columns == 0 {
		return 0
	}
	return len(t.cells) / t.columns
}

// Rows splits the grid into rows.
func (t *SeatTable) Rows() [][]string {
	out := make([][]string, 0, t.RowCount())
	for start := 0; start < len(t.cells); start += t.columns {
		out = append(out, slices.Clone(t.cells[start:start+t.columns]))
	}
	return out
}

// Cell returns the value at a zero-based row and column.
func (t *SeatTable) Cell(row, column int) string { return t.cells[row*t.columns+column] }

func (t *SeatTable) Seed() int64 { return t.seed }

func (t *SeatTable) SeedLabel() string { return t.seedLabel }

// LuckyPerson is the exempted person, or "" when nobody was exempted.
func (t *SeatTable) LuckyPerson() string { return t.luckyPerson }

// String renders the table as text, one row per line.
func (t *SeatTable) String() string {
	width := 0
	for _, c := range t.cells {
		width = max(width, len([]rune(c)))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Seed: %s\n", t.seedLabel)
	lucky := t.luckyPerson
	if lucky == "" {
		lucky = EmptySeat
	}
	fmt.Fprintf(&b, "Lucky person: %s\n", lucky)
	for _, row := range t.Rows() {
		for i, c := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(c)
			b.WriteString(strings.Repeat(" ", width-len([]rune(c))))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

type seatTableJSON struct {
	Rows        [][]string `json:"rows"`
	RowCount    int        `json:"row_count"`
	ColumnCount int        `json:"column_count"`
	Seed        int64      `json:"seed"`
	SeedLabel   string     `json:"seed_label"`
	LuckyPerson string     `json:"lucky_person,omitempty"`
}

func (t *SeatTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(seatTableJSON{
		Rows:        t.Rows(),
		RowCount:    t.RowCount(),
		ColumnCount: t.columns,
		Seed:        t.seed,
		SeedLabel:   t.seedLabel,
		LuckyPerson: t.luckyPerson,
	})
}
