package m

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

type Line struct {
	Inputs  []float64
	Targets []float64
}
type Lines []Line

// XOR returns the truth table of exclusive or, rows ordered 00, 01, 10, 11.
func XOR() Lines {
	return Lines{
		{Inputs: []float64{0, 0}, Targets: []float64{0}},
		{Inputs: []float64{0, 1}, Targets: []float64{1}},
		{Inputs: []float64{1, 0}, Targets: []float64{1}},
		{Inputs: []float64{1, 1}, Targets: []float64{0}},
	}
}

// Split returns the inputs and targets as two parallel slices, the form the
// network trains on.
func (lines Lines) Split() (inputs, targets [][]float64) {
	inputs = make([][]float64, len(lines))
	targets = make([][]float64, len(lines))
	for i, line := range lines {
		inputs[i] = line.Inputs
		targets[i] = line.Targets
	}
	return inputs, targets
}

// GetLines reads comma separated rows of inputNum inputs followed by
// outputNum targets. Blank lines and lines starting with # are skipped.
func GetLines(reader io.Reader, inputNum, outputNum int) (Lines, error) {
	scanner := bufio.NewScanner(reader)
	var lines Lines
	var lineNum int
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		splits := strings.Split(text, ",")
		if len(splits) != inputNum+outputNum {
			return lines, errInvalidLine{
				lineNum:  lineNum,
				splits:   len(splits),
				expected: inputNum + outputNum,
			}
		}
		inputs := make([]float64, inputNum)
		targets := make([]float64, outputNum)

		for i, split := range splits {
			num, err := strconv.ParseFloat(strings.TrimSpace(split), 64)
			if err != nil {
				if i < inputNum {
					return lines, errors.Wrapf(err, "parsing input %d at line %d", i, lineNum)
				}
				return lines, errors.Wrapf(err, "parsing target %d at line %d", i-inputNum, lineNum)
			}
			if i < inputNum {
				inputs[i] = num
			} else {
				targets[i-inputNum] = num
			}
		}
		lines = append(lines, Line{
			Inputs:  inputs,
			Targets: targets,
		})
	}
	if err := scanner.Err(); err != nil {
		return lines, errors.Wrap(err, "reading lines")
	}
	return lines, nil
}

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.splits)
}

func NormalizeLines(lines Lines, std []float64, mean []float64) Lines {
	normalizedLines := make(Lines, len(lines))
	for i, line := range lines {
		normalizedInputs := make([]float64, len(line.Inputs))
		for j, x := range line.Inputs {
			if std[j] == 0 {
				normalizedInputs[j] = 0
				continue
			}
			normalizedInputs[j] = (x - mean[j]) / std[j]
		}

		normalizedLines[i] = Line{
			Inputs:  normalizedInputs,
			Targets: line.Targets,
		}
	}
	return normalizedLines
}

func CalculateMean(lines Lines) []float64 {
	if len(lines) == 0 {
		return nil
	}

	mean := make([]float64, len(lines[0].Inputs))
	for _, line := range lines {
		floats.Add(mean, line.Inputs)
	}
	floats.Scale(1/float64(len(lines)), mean)
	return mean
}

func CalculateStdDev(lines Lines) []float64 {
	if len(lines) == 0 {
		return nil
	}

	mean := CalculateMean(lines)

	stdDev := make([]float64, len(mean))
	diff := make([]float64, len(mean))
	for _, line := range lines {
		floats.SubTo(diff, line.Inputs, mean)
		floats.Mul(diff, diff)
		floats.Add(stdDev, diff)
	}

	for i := range stdDev {
		stdDev[i] = math.Sqrt(stdDev[i] / float64(len(lines)))
	}

	return stdDev
}

// LineSplitter returns the iterationNum-th batch of batchSize lines, or an
// empty batch when it lies past the end.
func LineSplitter(batchSize, iterationNum int, lines Lines) Lines {
	start := batchSize * iterationNum
	end := batchSize * (iterationNum + 1)

	if start < 0 || start >= len(lines) || end <= start {
		return Lines{}
	}

	if end > len(lines) {
		end = len(lines)
	}

	return lines[start:end]
}
