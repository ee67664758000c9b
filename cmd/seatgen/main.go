// Command seatgen generates a seat table from a config file without the API
// server.
//
//	seatgen -config class.yaml -seed 42 -xlsx exports
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Calboot/RandomSeatGenerator/internal/export"
	"github.com/Calboot/RandomSeatGenerator/internal/seating"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("seatgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var configPath, seed, xlsxDir string
	var timeout time.Duration
	var maxAttempts int
	var empty bool
	fs.StringVar(&configPath, "config", "", "path to a .json, .yaml or .yml seating config")
	fs.StringVar(&seed, "seed", "", "seed text; a random seed is used when omitted")
	fs.DurationVar(&timeout, "timeout", seating.DefaultTimeout, "generation time budget")
	fs.IntVar(&maxAttempts, "max-attempts", 0, "arrangement budget, 0 = unlimited")
	fs.StringVar(&xlsxDir, "xlsx", "", "also save the table as an .xlsx file in this directory")
	fs.BoolVar(&empty, "empty", false, "print an empty table of the configured size")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(configPath) == "" {
		fmt.Fprintln(stderr, "seatgen requires -config")
		return 2
	}
	seedSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	raw, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}

	var table *seating.SeatTable
	if empty {
		table, err = preview(raw)
	} else {
		if !seedSet {
			if seed, err = seating.RandomSeedText(seating.DefaultSeedLength); err != nil {
				fmt.Fprintf(stderr, "seed: %v\n", err)
				return 1
			}
		}
		table, err = generate(raw, seed, timeout, maxAttempts)
	}
	if err != nil {
		printError(stderr, err)
		return 1
	}

	fmt.Fprint(stdout, table.String())
	if xlsxDir != "" {
		path, err := export.SaveXLSX(xlsxDir, table, time.Now())
		if err != nil {
			fmt.Fprintf(stderr, "save xlsx: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "saved %s\n", path)
	}
	return 0
}

// loadConfig reads a config file, picking the decoder by extension.
func loadConfig(path string) (seating.RawConfig, error) {
	var raw seating.RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return raw, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)
	default:
		err = fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
	return raw, err
}

func preview(raw seating.RawConfig) (*seating.SeatTable, error) {
	cfg, err := raw.ParseDimensions()
	if err != nil {
		return nil, err
	}
	return seating.GenerateEmpty(cfg)
}

func generate(raw seating.RawConfig, seed string, timeout time.Duration, maxAttempts int) (*seating.SeatTable, error) {
	cfg, err := raw.Parse()
	if err != nil {
		return nil, err
	}
	gen := seating.NewGenerator(seating.WithTimeout(timeout), seating.WithMaxAttempts(maxAttempts))
	return gen.Generate(context.Background(), cfg, seed)
}

func printError(w io.Writer, err error) {
	var illegal *seating.IllegalConfigError
	if errors.As(err, &illegal) {
		fmt.Fprintln(w, "illegal config:")
		for _, p := range illegal.Problems {
			fmt.Fprintf(w, "  - %s\n", p)
		}
		return
	}
	fmt.Fprintln(w, err)
}
