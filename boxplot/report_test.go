package boxplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	b := New("sample")
	b.InitWith(fiveValues(), 0)

	want := "# Results of the Boxplot sample ###### 5 values : \n" +
		"a 1.0\nb 2.0\nc 3.0\nd 4.0\ne 5.0\n" +
		"\n ###### " +
		"\n Median        : 3.0 " +
		"\n LowerQuartile : 2.0 " +
		"\n UpperQuartile : 5.0 " +
		"\n InterQuartile : 3.0 " +
		"\n MinBound      : 0.0 " +
		"\n MaxBound      : 9.5 " +
		"\n\n Fuzziness   : 0.0 \n"
	assert.Equal(t, want, b.String())
}

func TestStringBeforeInit(t *testing.T) {
	b := New("pending")
	b.AddEntry("x", 2)

	assert.Equal(t, "# Results of the Boxplot pending ###### 0 values : \nx 2.0\n\n ###### \n not initialized \n", b.String())
}

func TestFormatDouble(t *testing.T) {
	for v, want := range map[float64]string{
		0:          "0.0",
		3:          "3.0",
		-2:         "-2.0",
		9.5:        "9.5",
		0.001:      "0.001",
		1234567.25: "1234567.25",
		1e7:        "1.0E7",
		1e10:       "1.0E10",
		12345678:   "1.2345678E7",
		1.5e-5:     "1.5E-5",
	} {
		assert.Equal(t, want, formatDouble(v), "%v", v)
	}
}
