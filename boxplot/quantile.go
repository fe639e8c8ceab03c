package boxplot

import (
	"errors"
	"fmt"
	"math"
)

var ErrPercentileOutOfRange = errors.New("boxplot: percentile out of range")

// percentile implements SAS method 4 over sorted values x:
//
//	(n+1)p = j + g
//	y = (1-g)*x[j] + g*x[j+1]   (1-indexed, x[n+1] taken to be x[n])
//
// At j == n and j == 0 both interpolation endpoints collapse onto the same
// element. The formula has no element to read once j exceeds n, which
// happens for p close to 1; such p panic.
func percentile(x []float64, p float64) float64 {
	n := len(x)
	if math.IsNaN(p) || p < 0 || p > 1 {
		panic(fmt.Errorf("%w: p=%v", ErrPercentileOutOfRange, p))
	}

	a := float64(n+1) * p
	j := int(a)
	g := a - float64(j)

	switch {
	case j > n:
		panic(fmt.Errorf("%w: p=%v indexes %d of %d values", ErrPercentileOutOfRange, p, j, n))
	case j == n:
		return (1-g)*x[j-1] + g*x[j-1]
	case j == 0:
		return (1-g)*x[j] + g*x[j]
	default:
		return (1-g)*x[j-1] + g*x[j]
	}
}

// lowerQuartile uses the Minitab position (n+1)/4, truncated, as a 0-based
// index.
func lowerQuartile(x []float64) float64 {
	return x[(len(x)+1)/4]
}

// upperQuartile uses the Minitab position (3n+3)/4, truncated, as a 0-based
// index, and falls back to 0 when that runs past the end. Only entry sets of
// three values or fewer get there, which Init's padding rules out.
func upperQuartile(x []float64) float64 {
	k := (3*len(x) + 3) / 4
	if k < len(x) {
		return x[k]
	}
	return 0
}
