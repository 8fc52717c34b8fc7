package graph

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DegreeSummary describes the distribution of a per-vertex degree count.
type DegreeSummary struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median float64
	// Quintiles holds the 0th, 20th, 40th, 60th, 80th and 100th
	// percentiles of the distribution.
	Quintiles [6]float64
}

// Report summarizes the shape of a finalized graph.
type Report struct {
	Vertices  int
	Edges     int
	Dangling  int
	InDegree  DegreeSummary
	OutDegree DegreeSummary
}

// Summarize computes summary statistics for the provided snapshot. It
// is a pure function: the snapshot is only read.
func Summarize(snap *Snapshot) Report {
	n := snap.VertexCount()
	in := make([]float64, n)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		in[i] = float64(snap.InDegree(i))
		out[i] = float64(snap.OutDegree(i))
	}

	return Report{
		Vertices:  n,
		Edges:     snap.EdgeCount(),
		Dangling:  len(snap.Dangling()),
		InDegree:  summarizeDegrees(in),
		OutDegree: summarizeDegrees(out),
	}
}

func summarizeDegrees(degrees []float64) DegreeSummary {
	if len(degrees) == 0 {
		return DegreeSummary{}
	}

	// gonum quantiles require sorted input.
	sort.Float64s(degrees)

	summary := DegreeSummary{
		Count:  len(degrees),
		Min:    int(degrees[0]),
		Max:    int(degrees[len(degrees)-1]),
		Mean:   stat.Mean(degrees, nil),
		Median: stat.Quantile(0.5, stat.Empirical, degrees, nil),
	}
	for i := range summary.Quintiles {
		summary.Quintiles[i] = stat.Quantile(float64(i)/5.0, stat.Empirical, degrees, nil)
	}
	return summary
}
