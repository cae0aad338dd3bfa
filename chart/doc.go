// Package chart draws benchmark data into a sketch.Drawing.
//
// Benchmark results are read into a [Table] by [ReadBenchmarks], either
// from CSV rows or from the output of "go test -bench". [DrawBenchmarks]
// draws one [SectorChart] per language.
//
// Two adapters let other charting libraries draw into a Drawing:
// [PlotCanvas] is a gonum vg.Canvas, and [GoChart] is a go-chart
// Renderer.
package chart
