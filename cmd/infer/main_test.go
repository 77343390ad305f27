package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQueries(t *testing.T) {
	queries, err := parseQueries("0,1; 1, 1;", 2)
	require.NoError(t, err)
	require.Len(t, queries, 2)
	require.Equal(t, []float64{0, 1}, queries[0].Inputs)
	require.Equal(t, []float64{1, 1}, queries[1].Inputs)

	queries, err = parseQueries("", 2)
	require.NoError(t, err)
	require.Empty(t, queries)

	_, err = parseQueries("0,1,1", 2)
	require.Error(t, err)
	_, err = parseQueries("0,z", 2)
	require.Error(t, err)
}

func TestReadLines(t *testing.T) {
	lines, err := readLines("testdata/xor.csv", 2, 1)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	require.Equal(t, []float64{1, 0}, lines[2].Inputs)
	require.Equal(t, []float64{1}, lines[2].Targets)

	_, err = readLines("testdata/missing.csv", 2, 1)
	require.Error(t, err)
}
