// Package source loads state lists for categorical sampling from delimited
// text resources such as name lists and zip code tables.
package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/xmplr/xmplr/synth"
)

// Built-in dataset paths, relative to a data directory.
const (
	FirstNamesCSV  = "First_Names.csv"
	LastNamesCSV   = "Last_Names.csv"
	StreetNamesCSV = "Street_Names.csv"
	ZipCodesCSV    = "US_Zip_Codes.csv"
)

// HeaderLines is the number of header lines in the built-in datasets.
const HeaderLines = 1

// Resolve returns path unchanged if absolute, otherwise joined to dataDir.
func Resolve(dataDir, path string) string {
	if filepath.IsAbs(path) || dataDir == "" {
		return path
	}
	return filepath.Join(dataDir, path)
}

// ReadLines returns the non-empty lines of r after skipping the first skip
// lines. Any run of CR/LF separates lines.
func ReadLines(r io.Reader, skip int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanCRLFRuns)
	var lines []string
	seen := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scanCRLFRuns is a bufio.SplitFunc that treats any run of '\r' and '\n' as
// one separator.
func scanCRLFRuns(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && (data[start] == '\r' || data[start] == '\n') {
		start++
	}
	for i := start; i < len(data); i++ {
		if data[i] == '\r' || data[i] == '\n' {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	if atEOF {
		return len(data), nil, nil
	}
	return start, nil, nil
}

// ReadFile reads the lines of the file at path, skipping skip header lines.
func ReadFile(path string, skip int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := ReadLines(f, skip)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// LoadList loads one state per line with uniform weights.
func LoadList(path string, skip int) (*synth.WeightedList, error) {
	lines, err := ReadFile(path, skip)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: no states after skipping %d line(s)", path, skip)
	}
	list, err := synth.NewWeightedList(lines, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("loaded %d states from %s", len(lines), path)
	return list, nil
}

// LoadWeightedList loads a delimited resource whose stateCol column holds the
// state and weightCol column holds its weight. The first skip records are
// treated as headers.
func LoadWeightedList(path string, skip, stateCol, weightCol int) (*synth.WeightedList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var states []string
	var weights []float64
	for row := 0; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if row < skip {
			continue
		}
		if stateCol >= len(rec) || weightCol >= len(rec) {
			return nil, fmt.Errorf("%s line %d: %w: want columns %d and %d, got %d",
				path, row+1, synth.ErrInvalidArgument, stateCol, weightCol, len(rec))
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(rec[weightCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w: weight %q: %v",
				path, row+1, synth.ErrInvalidArgument, rec[weightCol], err)
		}
		states = append(states, rec[stateCol])
		weights = append(weights, w)
	}
	list, err := synth.NewWeightedList(states, weights)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("loaded %d weighted states from %s", len(states), path)
	return list, nil
}
