package chart

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/sketch"
)

// GoLanguage is the language recorded for "go test -bench" result lines.
const GoLanguage = "go"

// ReadBenchmarks reads benchmark results. Each line is either a CSV row
// "benchmark,language,value" or a Go benchmark result such as
//
//	BenchmarkFib20-8   	   30000	     41653 ns/op
//
// whose ns/op figure is recorded for GoLanguage under the name "Fib20".
// A first CSV row whose value does not parse is taken as a header. Blank
// lines, lines starting with '#' and other lines without a comma are
// skipped.
func ReadBenchmarks(r io.Reader) (*Table, error) {
	t := NewTable()
	sc := bufio.NewScanner(r)
	lineNo, rows := 0, 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if name, v, ok := parseGoBench(line); ok {
			t.Add(GoLanguage, name, v)
			continue
		}
		if !strings.Contains(line, ",") {
			continue
		}

		rec, err := csv.NewReader(strings.NewReader(line)).Read()
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecord, lineNo, err)
		}
		if len(rec) != 3 {
			return nil, fmt.Errorf("%w: line %d: %d fields, want 3", ErrBadRecord, lineNo, len(rec))
		}
		bench, lang := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			if rows == 0 {
				rows++
				continue
			}
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecord, lineNo, err)
		}
		rows++
		t.Add(lang, bench, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("chart: read benchmarks: %w", err)
	}
	return t, nil
}

// ReadBenchmarksFile reads benchmark results from the file at path.
func ReadBenchmarksFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	defer f.Close()

	t, err := ReadBenchmarks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sketch.Logger().Debug("chart: read benchmarks", "path", path,
		"languages", len(t.Languages()), "benchmarks", len(t.Benchmarks()))
	return t, nil
}

// parseGoBench parses a "go test -bench" result line.
func parseGoBench(line string) (name string, nsPerOp float64, ok bool) {
	if !strings.HasPrefix(line, "Benchmark") {
		return "", 0, false
	}
	fields := strings.Fields(line)
	for i := 2; i < len(fields); i++ {
		if fields[i] != "ns/op" {
			continue
		}
		v, err := strconv.ParseFloat(fields[i-1], 64)
		if err != nil {
			return "", 0, false
		}
		name = strings.TrimPrefix(fields[0], "Benchmark")
		if j := strings.LastIndexByte(name, '-'); j > 0 {
			if _, err := strconv.Atoi(name[j+1:]); err == nil {
				name = name[:j]
			}
		}
		return name, v, true
	}
	return "", 0, false
}

// SampleBenchmarks returns a small built-in table of results.
func SampleBenchmarks() *Table {
	t := NewTable()
	data := []struct {
		bench string
		vals  [4]float64
	}{
		{"binary-trees", [4]float64{12.2, 3.3, 1.6, 1.1}},
		{"fannkuch", [4]float64{8.4, 1.7, 2.9, 1.2}},
		{"fasta", [4]float64{1.9, 1.4, 1.2, 0.9}},
		{"mandelbrot", [4]float64{3.7, 1.0, 1.1, 0.9}},
		{"n-body", [4]float64{6.9, 2.1, 2.2, 2.1}},
		{"spectral-norm", [4]float64{1.9, 1.1, 1.4, 1.0}},
	}
	langs := [4]string{"python", "java", GoLanguage, "c"}
	for _, d := range data {
		for i, lang := range langs {
			t.Add(lang, d.bench, d.vals[i])
		}
	}
	return t
}
