// Package boxplot computes Tukey boxplot statistics over a named set of
// samples and classifies the samples into outlier and value bands.
//
// A BoxPlot is populated with entries, initialised once, then queried.
// Initialisation sorts the values and derives the median, the quartiles, the
// Tukey bounds and the absolute fuzziness eagerly; every query afterwards
// reuses them. A BoxPlot is not safe for concurrent use.
package boxplot

import (
	"errors"
	"fmt"
	"sort"
)

// Tukey is the fence multiplier applied to the interquartile range.
const Tukey = 1.5

const (
	// minEntries is the size below which the entry set gets padded.
	minEntries = 4
	// paddedEntries is the size a padded entry set ends up with.
	paddedEntries = 5
	paddingKey    = "FakeValue"
)

var ErrNotInitialized = errors.New("boxplot: statistics requested before Init")

type BoxPlot struct {
	name    string
	entries map[string]float64
	// fuzzinessPct is the tolerance as a percentage of the value range, as
	// supplied by the caller.
	fuzzinessPct float64

	initialized        bool
	sortedValues       []float64
	median             float64
	lowerQuartile      float64
	upperQuartile      float64
	interQuartileRange float64
	minBound           float64
	maxBound           float64
	// fuzziness is the absolute tolerance derived from fuzzinessPct.
	fuzziness float64
}

func New(name string) *BoxPlot {
	return &BoxPlot{
		name:    name,
		entries: make(map[string]float64),
	}
}

func (b *BoxPlot) Name() string {
	return b.name
}

func (b *BoxPlot) SetName(name string) {
	b.name = name
}

// AddEntry sets the value of id. Derived statistics are not refreshed until
// the next Init.
func (b *BoxPlot) AddEntry(id string, value float64) {
	if b.entries == nil {
		b.entries = make(map[string]float64)
	}
	b.entries[id] = value
}

// Entries returns a copy of the entry set, padding included.
func (b *BoxPlot) Entries() map[string]float64 {
	return copyEntries(b.entries)
}

// SetFuzziness sets the tolerance, in percent of the value range, used by the
// next Init.
func (b *BoxPlot) SetFuzziness(pct float64) {
	b.fuzzinessPct = pct
}

// InitWith replaces the entry set with a copy of samples and derives all
// statistics. samples itself is never modified.
func (b *BoxPlot) InitWith(samples map[string]float64, fuzzinessPct float64) {
	b.entries = copyEntries(samples)
	b.fuzzinessPct = fuzzinessPct
	b.Init()
}

// Init derives all statistics from the current entries and fuzziness
// percentage. Entry sets smaller than four are first padded with zero values
// up to five entries.
func (b *BoxPlot) Init() {
	if b.entries == nil {
		b.entries = make(map[string]float64)
	}
	pad(b.entries)

	b.sortedValues = sortValues(b.entries)
	n := len(b.sortedValues)

	b.median = percentile(b.sortedValues, 0.5)
	b.lowerQuartile = lowerQuartile(b.sortedValues)
	b.upperQuartile = upperQuartile(b.sortedValues)
	b.interQuartileRange = b.upperQuartile - b.lowerQuartile

	b.minBound = b.lowerQuartile - Tukey*b.interQuartileRange
	// Values are magnitudes, nothing can fall below zero.
	if b.minBound < 0 {
		b.minBound = 0
	}
	b.maxBound = b.upperQuartile + Tukey*b.interQuartileRange

	valueRange := b.sortedValues[n-1] - b.sortedValues[0]
	b.fuzziness = b.fuzzinessPct * valueRange / 100

	b.initialized = true
}

// Initialized reports whether Init has run at least once.
func (b *BoxPlot) Initialized() bool {
	return b.initialized
}

func (b *BoxPlot) mustBeInitialized() {
	if !b.initialized {
		panic(ErrNotInitialized)
	}
}

// NbValues returns the number of values, padding included.
func (b *BoxPlot) NbValues() int {
	b.mustBeInitialized()
	return len(b.sortedValues)
}

// SortedValues returns a copy of the values in ascending order.
func (b *BoxPlot) SortedValues() []float64 {
	b.mustBeInitialized()
	return append([]float64(nil), b.sortedValues...)
}

// Percentile returns the p-th sample percentile, 0 <= p <= 1, computed with
// SAS method 4. It panics when p falls outside the range the method can
// index.
func (b *BoxPlot) Percentile(p float64) float64 {
	b.mustBeInitialized()
	return percentile(b.sortedValues, p)
}

func (b *BoxPlot) Median() float64 {
	b.mustBeInitialized()
	return b.median
}

func (b *BoxPlot) LowerQuartile() float64 {
	b.mustBeInitialized()
	return b.lowerQuartile
}

// UpperQuartile returns 0 when the entry set is too small for the quartile
// index to exist.
func (b *BoxPlot) UpperQuartile() float64 {
	b.mustBeInitialized()
	return b.upperQuartile
}

func (b *BoxPlot) InterQuartileRange() float64 {
	b.mustBeInitialized()
	return b.interQuartileRange
}

// MinBound returns the lower Tukey fence, clamped at zero.
func (b *BoxPlot) MinBound() float64 {
	b.mustBeInitialized()
	return b.minBound
}

// MaxBound returns the upper Tukey fence.
func (b *BoxPlot) MaxBound() float64 {
	b.mustBeInitialized()
	return b.maxBound
}

// LowerOutlier returns the smallest value.
func (b *BoxPlot) LowerOutlier() float64 {
	b.mustBeInitialized()
	return b.sortedValues[0]
}

// HigherOutlier returns the largest value.
func (b *BoxPlot) HigherOutlier() float64 {
	b.mustBeInitialized()
	return b.sortedValues[len(b.sortedValues)-1]
}

// Fuzziness returns the absolute tolerance applied by the classification
// queries.
func (b *BoxPlot) Fuzziness() float64 {
	b.mustBeInitialized()
	return b.fuzziness
}

// Summary holds every scalar derived by Init.
type Summary struct {
	Count              int
	Median             float64
	LowerQuartile      float64
	UpperQuartile      float64
	InterQuartileRange float64
	MinBound           float64
	MaxBound           float64
	Fuzziness          float64
	Min                float64
	Max                float64
}

// Summary returns the derived scalars, or ErrNotInitialized.
func (b *BoxPlot) Summary() (Summary, error) {
	if !b.initialized {
		return Summary{}, ErrNotInitialized
	}
	return Summary{
		Count:              len(b.sortedValues),
		Median:             b.median,
		LowerQuartile:      b.lowerQuartile,
		UpperQuartile:      b.upperQuartile,
		InterQuartileRange: b.interQuartileRange,
		MinBound:           b.minBound,
		MaxBound:           b.maxBound,
		Fuzziness:          b.fuzziness,
		Min:                b.sortedValues[0],
		Max:                b.sortedValues[len(b.sortedValues)-1],
	}, nil
}

// pad adds zero-valued entries under fresh sentinel keys until entries holds
// paddedEntries values. It only kicks in below minEntries.
func pad(entries map[string]float64) {
	if len(entries) >= minEntries {
		return
	}
	for i := 0; len(entries) < paddedEntries; i++ {
		key := paddingKey
		if i > 0 {
			key = fmt.Sprintf("%s%d", paddingKey, i)
		}
		if _, taken := entries[key]; taken {
			continue
		}
		entries[key] = 0
	}
}

func sortValues(entries map[string]float64) []float64 {
	values := make([]float64, 0, len(entries))
	for _, v := range entries {
		values = append(values, v)
	}
	sort.Float64s(values)
	return values
}

func copyEntries(entries map[string]float64) map[string]float64 {
	c := make(map[string]float64, len(entries))
	for k, v := range entries {
		c[k] = v
	}
	return c
}
