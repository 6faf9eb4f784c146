// Package results loads benchmark measurements from CSV into an in-memory
// table and derives the per-row quantities the chart renderer and notebook
// emitter consume.
package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Columns every benchmark CSV must carry. configuration and validators are
// optional and enable comparative rendering when both are present.
var requiredColumns = []string{
	"block_time",
	"tps",
	"latency_ms",
	"cpu_usage",
	"memory_usage",
	"blocks_produced",
	"avg_tx_per_block",
}

var (
	// ErrEmptyInput marks a CSV with no data rows.
	ErrEmptyInput = errors.New("no data rows")

	// ErrMissingColumn marks a table that lacks a column the requested
	// output needs.
	ErrMissingColumn = errors.New("missing column")
)

// Row is one benchmark measurement at a given block time. Configuration
// and Validators are zero-valued when the source had no comparative
// columns.
type Row struct {
	Configuration  string
	Validators     int
	BlockTime      float64
	TPS            float64
	LatencyMs      float64
	CPUUsage       float64
	MemoryUsage    float64
	BlocksProduced float64
	AvgTxPerBlock  float64
}

// ConfigKey joins the configuration name and validator count into the
// series identifier comparative charts group by ("osmosis-comet-4").
func (r Row) ConfigKey() string {
	return r.Configuration + "-" + strconv.Itoa(r.Validators)
}

// Efficiency is TPS per CPU percent. Rows without a CPU sample report 0.
func (r Row) Efficiency() float64 {
	if r.CPUUsage == 0 {
		return 0
	}

	return r.TPS / r.CPUUsage
}

// Table is the ordered set of rows loaded from one CSV file. Row order
// from the file carries no meaning; consumers sort for their own needs.
type Table struct {
	Source string
	Rows   []Row

	hasConfig bool
}

// Load reads a benchmark CSV into a Table. It fails when the file does
// not exist, when a required column is absent, when a cell does not
// parse, or when the table holds no data rows.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	return parse(path, f)
}

func parse(source string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%s: %w: %s", source, ErrMissingColumn, name)
		}
	}

	_, hasConfiguration := cols["configuration"]
	_, hasValidators := cols["validators"]

	t := &Table{
		Source:    source,
		hasConfig: hasConfiguration && hasValidators,
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, line, err)
		}

		row, err := parseRow(record, cols, t.hasConfig)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, line, err)
		}

		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
	}

	return t, nil
}

func parseRow(record []string, cols map[string]int, hasConfig bool) (Row, error) {
	get := func(name string) string {
		return strings.TrimSpace(record[cols[name]])
	}

	var row Row

	fields := []struct {
		name string
		dst  *float64
	}{
		{"block_time", &row.BlockTime},
		{"tps", &row.TPS},
		{"latency_ms", &row.LatencyMs},
		{"cpu_usage", &row.CPUUsage},
		{"memory_usage", &row.MemoryUsage},
		{"blocks_produced", &row.BlocksProduced},
		{"avg_tx_per_block", &row.AvgTxPerBlock},
	}

	for _, f := range fields {
		v, err := strconv.ParseFloat(get(f.name), 64)
		if err != nil {
			return Row{}, fmt.Errorf("parse %s: %w", f.name, err)
		}
		*f.dst = v
	}

	if hasConfig {
		row.Configuration = get("configuration")

		v, err := strconv.Atoi(get("validators"))
		if err != nil {
			return Row{}, fmt.Errorf("parse validators: %w", err)
		}
		row.Validators = v
	}

	return row, nil
}

// HasConfigColumns reports whether the source carried both comparative
// columns (configuration and validators).
func (t *Table) HasConfigColumns() bool {
	return t.hasConfig
}

// SortByBlockTime orders rows by ascending block time.
func (t *Table) SortByBlockTime() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].BlockTime < t.Rows[j].BlockTime
	})
}

// SortBySeries orders rows by config key, then by block time within each
// series.
func (t *Table) SortBySeries() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		ki, kj := t.Rows[i].ConfigKey(), t.Rows[j].ConfigKey()
		if ki != kj {
			return ki < kj
		}

		return t.Rows[i].BlockTime < t.Rows[j].BlockTime
	})
}

// ConfigKeys returns the distinct config keys present, sorted.
func (t *Table) ConfigKeys() []string {
	seen := make(map[string]struct{}, len(t.Rows))
	keys := make([]string, 0, len(t.Rows))

	for _, row := range t.Rows {
		key := row.ConfigKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Configurations returns the distinct configuration names present, sorted.
func (t *Table) Configurations() []string {
	seen := make(map[string]struct{}, len(t.Rows))
	names := make([]string, 0, len(t.Rows))

	for _, row := range t.Rows {
		if _, ok := seen[row.Configuration]; ok {
			continue
		}
		seen[row.Configuration] = struct{}{}
		names = append(names, row.Configuration)
	}

	sort.Strings(names)

	return names
}

// Series returns the rows for one config key, sorted by block time.
func (t *Table) Series(key string) []Row {
	var rows []Row
	for _, row := range t.Rows {
		if row.ConfigKey() == key {
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].BlockTime < rows[j].BlockTime
	})

	return rows
}

// ValidatorTPS returns the TPS of the first row, in block-time order,
// matching the configuration and validator count within ±10% of the given
// block time. The bool reports whether any row fell inside the window.
func (t *Table) ValidatorTPS(config string, validators int, blockTime float64) (float64, bool) {
	lo, hi := blockTime*0.9, blockTime*1.1

	var (
		found bool
		at    float64
		tps   float64
	)

	for _, row := range t.Rows {
		if row.Configuration != config || row.Validators != validators {
			continue
		}
		if row.BlockTime < lo || row.BlockTime > hi {
			continue
		}
		if !found || row.BlockTime < at {
			found = true
			at = row.BlockTime
			tps = row.TPS
		}
	}

	return tps, found
}
