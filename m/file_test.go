package m

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXOR(t *testing.T) {
	lines := XOR()
	require.Len(t, lines, 4)
	inputs, targets := lines.Split()
	require.Equal(t, [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, inputs)
	require.Equal(t, [][]float64{{0}, {1}, {1}, {0}}, targets)
}

func TestGetLines(t *testing.T) {
	data := `# a, b, a xor b, a and b
0,0,0,0

0,1,1,0
1, 0, 1, 0
1,1,0,1
`
	lines, err := GetLines(strings.NewReader(data), 2, 2)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	require.Equal(t, Line{Inputs: []float64{1, 0}, Targets: []float64{1, 0}}, lines[2])
	require.Equal(t, Line{Inputs: []float64{1, 1}, Targets: []float64{0, 1}}, lines[3])
}

func TestGetLinesWrongFieldCount(t *testing.T) {
	_, err := GetLines(strings.NewReader("0,0,0\n0,1\n"), 2, 1)
	require.Error(t, err)
	var invalid errInvalidLine
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, 2, invalid.lineNum)
	require.Equal(t, "at line 2, expected 3 values, got 2", err.Error())
}

func TestGetLinesBadNumber(t *testing.T) {
	_, err := GetLines(strings.NewReader("0,x,1\n"), 2, 1)
	require.ErrorContains(t, err, "parsing input 1 at line 1")

	_, err = GetLines(strings.NewReader("0,1,y\n"), 2, 1)
	require.ErrorContains(t, err, "parsing target 0 at line 1")
}

func TestMeanAndStdDev(t *testing.T) {
	lines := Lines{
		{Inputs: []float64{1, 10}},
		{Inputs: []float64{3, 10}},
	}
	require.Equal(t, []float64{2, 10}, CalculateMean(lines))
	require.Equal(t, []float64{1, 0}, CalculateStdDev(lines))
	require.Nil(t, CalculateMean(nil))
	require.Nil(t, CalculateStdDev(nil))

	normalized := NormalizeLines(lines, CalculateStdDev(lines), CalculateMean(lines))
	require.Equal(t, []float64{-1, 0}, normalized[0].Inputs)
	require.Equal(t, []float64{1, 0}, normalized[1].Inputs)
	// the source lines are untouched
	require.Equal(t, []float64{1, 10}, lines[0].Inputs)
}

func TestLineSplitter(t *testing.T) {
	lines := XOR()
	require.Equal(t, lines[:3], LineSplitter(3, 0, lines))
	require.Equal(t, lines[3:], LineSplitter(3, 1, lines))
	require.Empty(t, LineSplitter(3, 2, lines))
	require.Empty(t, LineSplitter(0, 0, lines))
	require.Empty(t, LineSplitter(2, -1, lines))
}
