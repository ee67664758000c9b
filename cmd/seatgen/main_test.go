package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `row_count: 2
column_count: 2
random_between_rows: 1
last_row_pos_cannot_be_chosen: ""
person_sort_by_height: A B C D
group_leader_list: A C
separate_list: ""
lucky_option: false
`

const jsonConfig = `{"row_count": 2, "column_count": "2", "random_between_rows": 1,
 "person_sort_by_height": "A B C D", "group_leader_list": "A C"}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunGeneratesFromYAMLAndJSON(t *testing.T) {
	for name, body := range map[string]string{"class.yaml": yamlConfig, "class.json": jsonConfig} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, body)
			var stdout, stderr bytes.Buffer
			code := run([]string{"-config", path, "-seed", "42"}, &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())
			assert.Contains(t, stdout.String(), "Seed: 42 (integer)\n")
			assert.Contains(t, stdout.String(), "Lucky person: -\n")
			assert.Contains(t, stdout.String(), "*A*")
			assert.Contains(t, stdout.String(), "*C*")
		})
	}
}

func TestRunIsReproducible(t *testing.T) {
	path := writeFile(t, "class.yml", yamlConfig)
	var a, b, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", path, "-seed", "monday"}, &a, &stderr))
	require.Equal(t, 0, run([]string{"-config", path, "-seed", "monday"}, &b, &stderr))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "Seed: monday (string)\n")
}

func TestRunRandomSeedWhenOmitted(t *testing.T) {
	path := writeFile(t, "class.yaml", yamlConfig)
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "(string)\n")
}

func TestRunEmptyPreview(t *testing.T) {
	path := writeFile(t, "class.yaml", "row_count: 2\ncolumn_count: 3\nperson_sort_by_height: A\n")
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", path, "-empty"}, &stdout, &stderr))
	assert.Equal(t, "Seed: -\nLucky person: -\n- | - | -\n- | - | -\n", stdout.String())
}

func TestRunSavesXLSX(t *testing.T) {
	path := writeFile(t, "class.yaml", yamlConfig)
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", path, "-seed", "1", "-xlsx", dir}, &stdout, &stderr), stderr.String())
	files, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Contains(t, stdout.String(), "saved "+files[0])
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "requires -config")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"-nope"}, &stdout, &stderr))

	stderr.Reset()
	bad := writeFile(t, "class.toml", "x")
	assert.Equal(t, 1, run([]string{"-config", bad}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unsupported config extension")

	stderr.Reset()
	illegal := writeFile(t, "class.yaml", "row_count: 0\ncolumn_count: 2\nperson_sort_by_height: A\n")
	assert.Equal(t, 1, run([]string{"-config", illegal, "-seed", "1"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "illegal config:\n  - row_count")

	stderr.Reset()
	// one leader cannot cover two columns
	stuck := writeFile(t, "class.yaml", "row_count: 2\ncolumn_count: 2\nrandom_between_rows: 1\nperson_sort_by_height: A B C D\ngroup_leader_list: A\n")
	assert.Equal(t, 1, run([]string{"-config", stuck, "-seed", "1", "-timeout", "50ms"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "timed out")
}
