package seating

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Text is a config value kept as text.  It unmarshals from a JSON string or
// a JSON number, so both {"row_count": "7"} and {"row_count": 7} work.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar, so row_count: 7 and row_count: "7" both
// work in YAML config files.
func (t *Text) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", n.Line)
	}
	if n.Tag == "!!null" {
		*t = ""
		return nil
	}
	*t = Text(n.Value)
	return nil
}

// RawConfig is a seating config as stored in config files and sent over the
// API: every value is text, lists are whitespace separated and separated
// pairs come one per line.
type RawConfig struct {
	RowCount                 Text `json:"row_count" yaml:"row_count"`
	ColumnCount              Text `json:"column_count" yaml:"column_count"`
	RandomBetweenRows        Text `json:"random_between_rows" yaml:"random_between_rows"`
	DisabledLastRowPositions Text `json:"last_row_pos_cannot_be_chosen" yaml:"last_row_pos_cannot_be_chosen"`
	Names                    Text `json:"person_sort_by_height" yaml:"person_sort_by_height"`
	GroupLeaders             Text `json:"group_leader_list" yaml:"group_leader_list"`
	SeparatedPairs           Text `json:"separate_list" yaml:"separate_list"`
	Lucky                    bool `json:"lucky_option" yaml:"lucky_option"`
}

// Parse converts r into a validated Config.  Parse errors and validation
// problems of all fields are reported together in one *IllegalConfigError.
// A blank random_between_rows defaults to the row count.
func (r RawConfig) Parse() (*Config, error) {
	var p problems
	failed := map[string]bool{}
	c := &Config{Lucky: r.Lucky}

	parseInt := func(field string, t Text, dst *int) {
		n, err := strconv.Atoi(strings.TrimSpace(string(t)))
		if err != nil {
			p.addf(field, "%q is not an integer", string(t))
			failed[field] = true
			return
		}
		*dst = n
	}
	parseInt(fieldRowCount, r.RowCount, &c.RowCount)
	parseInt(fieldColumnCount, r.ColumnCount, &c.ColumnCount)
	if strings.TrimSpace(string(r.RandomBetweenRows)) == "" {
		c.RandomBetweenRows = c.RowCount
		failed[fieldRandomBetweenRows] = failed[fieldRowCount]
	} else {
		parseInt(fieldRandomBetweenRows, r.RandomBetweenRows, &c.RandomBetweenRows)
	}

	for _, f := range strings.Fields(string(r.DisabledLastRowPositions)) {
		n, err := strconv.Atoi(f)
		if err != nil {
			p.addf(fieldDisabledLastRow, "%q is not an integer", f)
			failed[fieldDisabledLastRow] = true
			continue
		}
		c.DisabledLastRowPositions = append(c.DisabledLastRowPositions, n)
	}

	c.Names = strings.Fields(string(r.Names))
	c.GroupLeaders = strings.Fields(string(r.GroupLeaders))

	for _, line := range strings.Split(string(r.SeparatedPairs), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sp, err := ParseSeparatedPair(line)
		if err != nil {
			p.addf(fieldSeparatedPairs, "%v", err)
			failed[fieldSeparatedPairs] = true
			continue
		}
		c.SeparatedPairs = append(c.SeparatedPairs, sp)
	}

	if err := c.validate(failed); err != nil {
		var ice *IllegalConfigError
		if errors.As(err, &ice) {
			p = append(p, ice.Problems...)
		}
	}
	if err := p.err(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseDimensions reads only row_count and column_count, for previews of a
// config that is still being filled in.  The returned Config is not valid
// for Generate.
func (r RawConfig) ParseDimensions() (*Config, error) {
	var p problems
	c := &Config{}
	for _, f := range []struct {
		name string
		text Text
		dst  *int
	}{
		{fieldRowCount, r.RowCount, &c.RowCount},
		{fieldColumnCount, r.ColumnCount, &c.ColumnCount},
	} {
		n, err := strconv.Atoi(strings.TrimSpace(string(f.text)))
		if err != nil {
			p.addf(f.name, "%q is not an integer", string(f.text))
			continue
		}
		*f.dst = n
	}
	if err := p.err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Raw converts c back to its text form.
func (c *Config) Raw() RawConfig {
	pos := make([]string, len(c.DisabledLastRowPositions))
	for i, n := range c.DisabledLastRowPositions {
		pos[i] = strconv.Itoa(n)
	}
	pairs := make([]string, len(c.SeparatedPairs))
	for i, sp := range c.SeparatedPairs {
		pairs[i] = sp.String()
	}
	return RawConfig{
		RowCount:                 Text(strconv.Itoa(c.RowCount)),
		ColumnCount:              Text(strconv.Itoa(c.ColumnCount)),
		RandomBetweenRows:        Text(strconv.Itoa(c.RandomBetweenRows)),
		DisabledLastRowPositions: Text(strings.Join(pos, " ")),
		Names:                    Text(strings.Join(c.Names, " ")),
		GroupLeaders:             Text(strings.Join(c.GroupLeaders, " ")),
		SeparatedPairs:           Text(strings.Join(pairs, "\n")),
		Lucky:                    c.Lucky,
	}
}
