package chart

import (
	"fmt"
	"maps"
	"slices"
)

type cell struct {
	sum float64
	n   int
}

// Table holds one value per language and benchmark. Repeated results
// for the same pair are averaged.
type Table struct {
	cells map[string]map[string]cell
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{cells: map[string]map[string]cell{}}
}

// Add records a result for lang and bench.
func (t *Table) Add(lang, bench string, v float64) {
	row := t.cells[lang]
	if row == nil {
		row = map[string]cell{}
		t.cells[lang] = row
	}
	c := row[bench]
	c.sum += v
	c.n++
	row[bench] = c
}

// Len returns the number of recorded language and benchmark pairs.
func (t *Table) Len() int {
	n := 0
	for _, row := range t.cells {
		n += len(row)
	}
	return n
}

// Languages returns the languages in sorted order.
func (t *Table) Languages() []string {
	return slices.Sorted(maps.Keys(t.cells))
}

// Benchmarks returns the names of all benchmarks in sorted order.
func (t *Table) Benchmarks() []string {
	seen := map[string]bool{}
	for _, row := range t.cells {
		for b := range row {
			seen[b] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Value returns the mean result for lang and bench.
func (t *Table) Value(lang, bench string) (float64, bool) {
	c, ok := t.cells[lang][bench]
	if !ok || c.n == 0 {
		return 0, false
	}
	return c.sum / float64(c.n), true
}

// Values returns one Value per benchmark for lang, in Benchmarks order.
// Missing results are zero.
func (t *Table) Values(lang string) []Value {
	benches := t.Benchmarks()
	out := make([]Value, len(benches))
	for i, b := range benches {
		v, _ := t.Value(lang, b)
		out[i] = Value{Label: b, V: v}
	}
	return out
}

// Max returns the largest value in the table, or 0 when it is empty.
func (t *Table) Max() float64 {
	m := 0.0
	for lang, row := range t.cells {
		for b := range row {
			v, _ := t.Value(lang, b)
			m = max(m, v)
		}
	}
	return m
}

// Normalize returns a table with every value divided by the baseline
// language's value for the same benchmark. Benchmarks the baseline has
// no positive value for are dropped.
func (t *Table) Normalize(baseline string) (*Table, error) {
	if _, ok := t.cells[baseline]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, baseline)
	}
	out := NewTable()
	for lang, row := range t.cells {
		for b := range row {
			base, ok := t.Value(baseline, b)
			if !ok || base <= 0 {
				continue
			}
			v, _ := t.Value(lang, b)
			out.Add(lang, b, v/base)
		}
	}
	return out, nil
}
