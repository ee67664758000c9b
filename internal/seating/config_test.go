package seating

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validConfig() *Config {
	return &Config{
		RowCount: 2, ColumnCount: 3, RandomBetweenRows: 1,
		Names:        []string{"A", "B", "C", "D", "E"},
		GroupLeaders: []string{"A", "B", "C"},
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	t.Run("collects every problem", func(t *testing.T) {
		cfg := &Config{
			DisabledLastRowPositions: []int{3},
			Names:                    []string{"A", "A", "-"},
			GroupLeaders:             []string{"Z"},
			SeparatedPairs:           []SeparatedPair{NewSeparatedPair("A", "A", nil)},
		}
		err := cfg.Validate()
		var ice *IllegalConfigError
		require.ErrorAs(t, err, &ice)
		require.Len(t, ice.Problems, 7, ice.Problems)
		require.Contains(t, ice.Problems, "row_count: must be positive, got 0")
		require.Contains(t, ice.Problems, "column_count: must be positive, got 0")
		require.Contains(t, ice.Problems, "random_between_rows: must be positive, got 0")
		require.Contains(t, ice.Problems, `person_sort_by_height: duplicate name "A"`)
		require.Contains(t, ice.Problems, `group_leader_list: "Z" is not in the name list`)
	})

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"too wide", func(c *Config) { c.ColumnCount = 21 }, "column_count: cannot be larger than 20, got 21"},
		{"too deep", func(c *Config) { c.RowCount = MaxRowCount + 1 }, "row_count: cannot be larger than 200, got 201"},
		{"disabled out of range", func(c *Config) { c.DisabledLastRowPositions = []int{0, 4} }, "last_row_pos_cannot_be_chosen: position 0 is outside 1..3"},
		{"blank name", func(c *Config) { c.Names = append(c.Names, " ") }, "person_sort_by_height: contains a blank name"},
		{"leader lookalike", func(c *Config) { c.Names = append(c.Names, "*F*") }, `person_sort_by_height: name "*F*" looks like a marked group leader`},
		{"no leaders", func(c *Config) { c.GroupLeaders = nil }, "group_leader_list: cannot be empty"},
		{"pair stranger", func(c *Config) { c.SeparatedPairs = []SeparatedPair{NewSeparatedPair("A", "Q", nil)} }, `separate_list: "Q" is not in the name list`},
		{"over capacity", func(c *Config) { c.RowCount = 1 }, "person_sort_by_height: 5 people need 2 rows of 3 seats, got 1"},
		{"last row too small", func(c *Config) { c.DisabledLastRowPositions = []int{1, 2} }, "last_row_pos_cannot_be_chosen: available last row seats not enough: 1 free for 2 people"},
		{"lucky leaves nobody", func(c *Config) { c.Names = []string{"A"}; c.GroupLeaders = []string{"A"}; c.Lucky = true }, "person_sort_by_height: nobody is left to seat once the lucky person is exempted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			var ice *IllegalConfigError
			require.ErrorAs(t, cfg.Validate(), &ice)
			require.Contains(t, ice.Problems, tt.want)
		})
	}

	t.Run("deepest grid", func(t *testing.T) {
		cfg := &Config{RowCount: MaxRowCount, ColumnCount: MaxColumnCount, RandomBetweenRows: 1,
			Names: []string{"A", "B"}, GroupLeaders: []string{"A", "B"}}
		require.NoError(t, cfg.Validate())
	})

	t.Run("huge row count", func(t *testing.T) {
		cfg := &Config{RowCount: math.MaxInt64 / 10, ColumnCount: 20, RandomBetweenRows: 1,
			Names: []string{"A", "B"}, GroupLeaders: []string{"A", "B"}}
		var ice *IllegalConfigError
		require.ErrorAs(t, cfg.Validate(), &ice)
		require.Equal(t, []string{fmt.Sprintf("row_count: cannot be larger than 200, got %d", cfg.RowCount)}, ice.Problems)
	})
}

func TestLayoutOf(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want layout
	}{
		{"exact fit", Config{RowCount: 2, ColumnCount: 3, RandomBetweenRows: 5, Names: roster(6)},
			layout{rows: 2, columns: 3, blockSize: 6, seatCount: 6, placed: 6, overflow: 0}},
		{"rows capped by roster", Config{RowCount: 10, ColumnCount: 3, RandomBetweenRows: 2, Names: roster(7)},
			layout{rows: 3, columns: 3, blockSize: 6, seatCount: 9, placed: 7, overflow: 1}},
		{"lucky", Config{RowCount: 3, ColumnCount: 4, RandomBetweenRows: 1, Names: roster(9), Lucky: true},
			layout{rows: 2, columns: 4, blockSize: 4, seatCount: 8, placed: 8, overflow: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, layoutOf(&tt.cfg))
		})
	}
}

func TestValid(t *testing.T) {
	cfg := &Config{
		RowCount: 2, ColumnCount: 2, RandomBetweenRows: 1,
		Names:          []string{"A", "B", "C", "D"},
		GroupLeaders:   []string{"A", "D"},
		SeparatedPairs: []SeparatedPair{NewSeparatedPair("B", "C", sameRow)},
	}

	require.True(t, Valid([]string{"A", "B", "C", "D"}, cfg))
	require.False(t, Valid([]string{"A", "D", "B", "C"}, cfg), "B and C share a row")
	require.False(t, Valid([]string{"B", "A", "C", "D"}, cfg), "first column lacks a leader")
	require.False(t, Valid([]string{"A", "B", "C", "D"}, &Config{}), "invalid config accepts nothing")

	cfg.SeparatedPairs = []SeparatedPair{NewSeparatedPair("A", "D", nil)}
	require.False(t, Valid([]string{"A", "B", "C", "D"}, cfg), "A and D are diagonal neighbours")
}

func TestArrange_FreshCopies(t *testing.T) {
	cfg := &Config{
		RowCount: 3, ColumnCount: 3, RandomBetweenRows: 1,
		DisabledLastRowPositions: []int{2},
		Names:                    roster(8),
		GroupLeaders:             roster(8),
	}
	names := append([]string(nil), cfg.Names...)
	lastRow := availableLastRow(cfg)
	lo := layoutOf(cfg)
	rd := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		a := arrange(rd, cfg, lo, lastRow)
		require.Len(t, a.grid, 9)
		require.Equal(t, EmptySeat, a.grid[7])
	}
	require.Equal(t, names, cfg.Names, "config names untouched")
	require.Equal(t, []int{1, 3}, lastRow, "free positions untouched")
}

func TestResolveSeed(t *testing.T) {
	tests := []struct {
		in    string
		value int64
		label string
	}{
		{"42", 42, "42 (integer)"},
		{"-9223372036854775808", -9223372036854775808, "-9223372036854775808 (integer)"},
		{"", 0, "empty_string"},
		// XXH64 with seed 0; changing these changes every stored table
		{"hello", 2794345569481354659, "hello (string)"},
		{" 42", -4534647376893321578, " 42 (string)"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			s := ResolveSeed(tt.in)
			require.Equal(t, tt.value, s.Value)
			require.Equal(t, tt.label, s.Label)
		})
	}
	require.Equal(t, ResolveSeed("hello"), ResolveSeed("hello"))
	require.NotEqual(t, ResolveSeed("hello").Value, ResolveSeed("hello!").Value)
}

func TestRandomSeedText(t *testing.T) {
	s, err := RandomSeedText(0)
	require.NoError(t, err)
	require.Len(t, s, DefaultSeedLength)
	require.Regexp(t, `^[a-zA-Z0-9]+$`, s)
}

func TestParseSeparatedPair(t *testing.T) {
	sp, err := ParseSeparatedPair("A B")
	require.NoError(t, err)
	require.Equal(t, "A B adjacent", sp.String())

	sp, err = ParseSeparatedPair(" A  B within:2 ")
	require.NoError(t, err)
	require.True(t, sp.Rule.Conflicts(Position{0, 0}, Position{2, 2}))
	require.False(t, sp.Rule.Conflicts(Position{0, 0}, Position{3, 0}))

	sp, err = ParseSeparatedPair("A B same_column")
	require.NoError(t, err)
	require.True(t, sp.Rule.Conflicts(Position{0, 1}, Position{5, 1}))

	for _, bad := range []string{"A", "A B C D", "A B nowhere", "A B within:x", "A B within:-1"} {
		_, err := ParseSeparatedPair(bad)
		require.Error(t, err, bad)
	}
}

func TestSeparatedPairViolated(t *testing.T) {
	sp := NewSeparatedPair("A", "B", nil)
	require.True(t, sp.Violated([]string{"A", "B", "C", "D"}, 2))
	require.True(t, sp.Violated([]string{"A", "C", "D", "B"}, 2))
	require.False(t, sp.Violated([]string{"A", "C", "D", "E", "F", "B"}, 2))
	require.False(t, sp.Violated([]string{"A", "C", "D", "E"}, 2), "unseated member never conflicts")
}

func TestRawConfigParse(t *testing.T) {
	var raw RawConfig
	require.NoError(t, json.Unmarshal([]byte(`{
		"row_count": 2,
		"column_count": "3",
		"random_between_rows": "",
		"last_row_pos_cannot_be_chosen": "1",
		"person_sort_by_height": "A B C D E",
		"group_leader_list": "A B C",
		"separate_list": "A B\n\nD E same_row\n",
		"lucky_option": false
	}`), &raw))

	cfg, err := raw.Parse()
	require.NoError(t, err)
	require.Equal(t, 2, cfg.RowCount)
	require.Equal(t, 3, cfg.ColumnCount)
	require.Equal(t, 2, cfg.RandomBetweenRows, "blank defaults to the row count")
	require.Equal(t, []int{1}, cfg.DisabledLastRowPositions)
	require.Equal(t, []string{"A", "B", "C", "D", "E"}, cfg.Names)
	require.Len(t, cfg.SeparatedPairs, 2)
	require.Equal(t, "D E same_row", cfg.SeparatedPairs[1].String())

	back, err := cfg.Raw().Parse()
	require.NoError(t, err)
	require.Equal(t, cfg.Names, back.Names)
	require.Equal(t, cfg.RandomBetweenRows, back.RandomBetweenRows)

	t.Run("reports every field", func(t *testing.T) {
		raw := RawConfig{
			RowCount:                 "two",
			ColumnCount:              "3",
			RandomBetweenRows:        "1",
			DisabledLastRowPositions: "x",
			Names:                    "A B",
			GroupLeaders:             "Z",
			SeparatedPairs:           "A",
		}
		_, err := raw.Parse()
		var ice *IllegalConfigError
		require.ErrorAs(t, err, &ice)
		require.Len(t, ice.Problems, 4, ice.Problems)
		require.Contains(t, ice.Problems, `row_count: "two" is not an integer`)
		require.Contains(t, ice.Problems, `last_row_pos_cannot_be_chosen: "x" is not an integer`)
		require.Contains(t, ice.Problems, `group_leader_list: "Z" is not in the name list`)
	})
}

func TestRawConfigParseDimensions(t *testing.T) {
	cfg, err := RawConfig{RowCount: " 4", ColumnCount: "5", Names: "anything goes"}.ParseDimensions()
	require.NoError(t, err)
	require.Equal(t, 4, cfg.RowCount)
	require.Equal(t, 5, cfg.ColumnCount)

	table, err := GenerateEmpty(cfg)
	require.NoError(t, err)
	require.Equal(t, 4, table.RowCount())

	_, err = RawConfig{RowCount: "", ColumnCount: "x"}.ParseDimensions()
	var ice *IllegalConfigError
	require.ErrorAs(t, err, &ice)
	require.Len(t, ice.Problems, 2)
}

func TestRawConfigYAML(t *testing.T) {
	doc := `
row_count: 2
column_count: "3"
random_between_rows:
last_row_pos_cannot_be_chosen: 1
person_sort_by_height: A B C D E
group_leader_list: A B C
separate_list: |
  A B
  D E same_row
lucky_option: false
`
	var raw RawConfig
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))
	require.Equal(t, Text("2"), raw.RowCount)
	require.Equal(t, Text("1"), raw.DisabledLastRowPositions)

	cfg, err := raw.Parse()
	require.NoError(t, err)
	require.Equal(t, 2, cfg.RandomBetweenRows)
	require.Len(t, cfg.SeparatedPairs, 2)

	require.Error(t, yaml.Unmarshal([]byte("row_count: [1, 2]\n"), &raw))
}
