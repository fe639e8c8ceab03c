package boxplot

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// String renders the entries and the derived statistics. Entries are listed
// in identifier order. Before Init only the entries are rendered.
func (b *BoxPlot) String() string {
	var s strings.Builder

	s.WriteString("# Results of the Boxplot " + b.name)
	s.WriteString(" ###### ")
	s.WriteString(strconv.Itoa(len(b.sortedValues)) + " values : \n")

	ids := make([]string, 0, len(b.entries))
	for id := range b.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s.WriteString(id + " " + formatDouble(b.entries[id]) + "\n")
	}

	s.WriteString("\n ###### ")
	if !b.initialized {
		s.WriteString("\n not initialized \n")
		return s.String()
	}
	s.WriteString("\n Median        : " + formatDouble(b.median) + " ")
	s.WriteString("\n LowerQuartile : " + formatDouble(b.lowerQuartile) + " ")
	s.WriteString("\n UpperQuartile : " + formatDouble(b.upperQuartile) + " ")
	s.WriteString("\n InterQuartile : " + formatDouble(b.interQuartileRange) + " ")
	s.WriteString("\n MinBound      : " + formatDouble(b.minBound) + " ")
	s.WriteString("\n MaxBound      : " + formatDouble(b.maxBound) + " ")
	s.WriteString("\n\n Fuzziness   : " + formatDouble(b.fuzziness) + " \n")

	return s.String()
}

// formatDouble prints v with at least one fractional digit, switching to
// computerized scientific notation ("1.0E10") outside [1e-3, 1e7).
func formatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	if abs := math.Abs(v); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'E', -1, 64), "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(e)
}
