package main

import (
	"boxplot_worker/boxplot"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats is what gets recorded for a test run. Min, Max, Mean and StdDev are
// taken over the samples as stored; the boxplot fields follow the boxplot's
// own rules, zero padding of small sets included.
type Stats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64

	Median    float64
	Q1        float64
	Q3        float64
	IQR       float64
	MinBound  float64
	MaxBound  float64
	Fuzziness float64

	LowOutliers  int
	LowValues    int
	NormalValues int
	HighValues   int
	HighOutliers int
}

// calculateStatistics runs a boxplot named name over samples. An empty sample
// set yields zero Stats and a nil boxplot.
func calculateStatistics(name string, samples map[string]float64, fuzziness float64) (Stats, *boxplot.BoxPlot) {
	if len(samples) == 0 {
		return Stats{}, nil
	}

	bp := boxplot.New(name)
	bp.InitWith(samples, fuzziness)
	summary, err := bp.Summary()
	if err != nil {
		// InitWith just ran
		panic(err)
	}

	values := make([]float64, 0, len(samples))
	for _, v := range samples {
		values = append(values, v)
	}
	mean, stddev := stat.PopMeanStdDev(values, nil)

	counts := bp.Classify().Counts()
	return Stats{
		Count:        len(values),
		Min:          floats.Min(values),
		Max:          floats.Max(values),
		Mean:         mean,
		StdDev:       stddev,
		Median:       summary.Median,
		Q1:           summary.LowerQuartile,
		Q3:           summary.UpperQuartile,
		IQR:          summary.InterQuartileRange,
		MinBound:     summary.MinBound,
		MaxBound:     summary.MaxBound,
		Fuzziness:    summary.Fuzziness,
		LowOutliers:  counts[boxplot.LowOutlier],
		LowValues:    counts[boxplot.LowValue],
		NormalValues: counts[boxplot.Normal],
		HighValues:   counts[boxplot.HighValue],
		HighOutliers: counts[boxplot.HighOutlier],
	}, bp
}
