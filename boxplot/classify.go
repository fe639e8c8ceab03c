package boxplot

import "boxplot_worker/operator"

// Band names a classification of a value relative to the boxplot.
type Band string

const (
	LowOutlier  Band = "low_outlier"
	LowValue    Band = "low_value"
	Normal      Band = "normal"
	HighValue   Band = "high_value"
	HighOutlier Band = "high_outlier"
)

// Bands lists every band from lowest to highest.
var Bands = []Band{LowOutlier, LowValue, Normal, HighValue, HighOutlier}

// Values returns the entries of from whose value v satisfies
// "v symbol threshold". A nil from selects the BoxPlot's own entries. An
// unregistered symbol panics.
func (b *BoxPlot) Values(symbol string, threshold float64, from map[string]float64) map[string]float64 {
	if from == nil {
		from = b.entries
	}
	op := operator.Get(symbol)

	res := make(map[string]float64)
	for id, v := range from {
		if op(v, threshold) {
			res[id] = v
		}
	}
	return res
}

// HighOutliers returns the entries above the upper fence.
func (b *BoxPlot) HighOutliers() map[string]float64 {
	b.mustBeInitialized()
	return b.Values(">", b.maxBound-b.fuzziness, nil)
}

// HighValues returns the entries between the upper quartile and the upper
// fence.
func (b *BoxPlot) HighValues() map[string]float64 {
	b.mustBeInitialized()
	m := b.Values(">=", b.upperQuartile-b.fuzziness, nil)
	return b.Values("<=", b.maxBound+b.fuzziness, m)
}

// LowOutliers returns the entries at or below the lower fence.
func (b *BoxPlot) LowOutliers() map[string]float64 {
	b.mustBeInitialized()
	return b.Values("<=", b.minBound+b.fuzziness, nil)
}

// LowValues returns the entries between the lower fence and the lower
// quartile.
func (b *BoxPlot) LowValues() map[string]float64 {
	b.mustBeInitialized()
	m := b.Values("<=", b.lowerQuartile+b.fuzziness, nil)
	return b.Values(">", b.minBound-b.fuzziness, m)
}

// NormalValues returns the entries strictly between the quartiles.
func (b *BoxPlot) NormalValues() map[string]float64 {
	b.mustBeInitialized()
	m := b.Values(">", b.lowerQuartile-b.fuzziness, nil)
	return b.Values("<", b.upperQuartile+b.fuzziness, m)
}

// Equal returns the entries within fuzziness of threshold.
func (b *BoxPlot) Equal(threshold float64) map[string]float64 {
	b.mustBeInitialized()
	m := b.Values(">=", threshold-b.fuzziness, nil)
	return b.Values("<=", threshold+b.fuzziness, m)
}

func (b *BoxPlot) Greater(threshold float64) map[string]float64 {
	b.mustBeInitialized()
	return b.Values(">", threshold-b.fuzziness, nil)
}

func (b *BoxPlot) GreaterOrEqual(threshold float64) map[string]float64 {
	b.mustBeInitialized()
	return b.Values(">=", threshold-b.fuzziness, nil)
}

func (b *BoxPlot) Less(threshold float64) map[string]float64 {
	b.mustBeInitialized()
	return b.Values("<", threshold+b.fuzziness, nil)
}

func (b *BoxPlot) LessOrEqual(threshold float64) map[string]float64 {
	b.mustBeInitialized()
	return b.Values("<=", threshold+b.fuzziness, nil)
}

// Classification holds the members of every band. Bands overlap near their
// boundaries, an entry may be listed in two of them.
type Classification map[Band]map[string]float64

// Classify runs all five band queries.
func (b *BoxPlot) Classify() Classification {
	return Classification{
		LowOutlier:  b.LowOutliers(),
		LowValue:    b.LowValues(),
		Normal:      b.NormalValues(),
		HighValue:   b.HighValues(),
		HighOutlier: b.HighOutliers(),
	}
}

// Counts returns the number of members of each band.
func (c Classification) Counts() map[Band]int {
	counts := make(map[Band]int, len(c))
	for band, members := range c {
		counts[band] = len(members)
	}
	return counts
}
