// Package analysis loads experiment logs, groups them into trials and derives
// the per-trial values that charts and summaries report.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

// Column names expected in the log files.
var (
	ContinuousColumns = []string{"trial_info", "phase", "event", "x", "y", "trial_time", "participant_id"}
	DiscreteColumns   = []string{"trial", "assigned_delay", "exploration_time"}
)

// table is a parsed CSV file with a header index.
type table struct {
	file string
	cols map[string]int
	rows [][]string
}

func readTable(path string, r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &types.ParseError{File: path, Err: errors.New("empty file, header row required")}
		}
		return nil, csvParseError(path, err)
	}
	t := &table{file: path, cols: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := t.cols[h]; !dup {
			t.cols[h] = i
		}
	}
	for _, c := range required {
		if _, ok := t.cols[c]; !ok {
			return nil, &types.ParseError{File: path, Column: c, Err: errors.New("required column missing")}
		}
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvParseError(path, err)
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func csvParseError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &types.ParseError{File: path, Line: pe.Line, Err: pe.Err}
	}
	return &types.ParseError{File: path, Err: err}
}

// has reports whether the optional column exists.
func (t *table) has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

func (t *table) str(row int, col string) string {
	i, ok := t.cols[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}

// float parses a numeric cell; empty and NaN cells yield NaN.
func (t *table) float(row int, col string) (float64, error) {
	s := t.str(row, col)
	if isMissing(s) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// header is line 1, first data row is line 2
		return 0, &types.ParseError{File: t.file, Line: row + 2, Column: col, Err: fmt.Errorf("not a number: %q", s)}
	}
	if math.IsInf(v, 0) {
		return 0, &types.ParseError{File: t.file, Line: row + 2, Column: col, Err: fmt.Errorf("not a finite number: %q", s)}
	}
	return v, nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "na", "null", "none":
		return true
	}
	return false
}

// LoadContinuous reads a continuous log file.
func LoadContinuous(path string) ([]types.ContinuousRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadContinuous(path, f)
}

// ReadContinuous parses continuous-log CSV from r; name is used in errors.
func ReadContinuous(name string, r io.Reader) ([]types.ContinuousRow, error) {
	t, err := readTable(name, r, ContinuousColumns)
	if err != nil {
		return nil, err
	}
	out := make([]types.ContinuousRow, 0, len(t.rows))
	for i := range t.rows {
		row := types.ContinuousRow{
			TrialID:       t.str(i, "trial_info"),
			Phase:         types.Phase(t.str(i, "phase")),
			ParticipantID: t.str(i, "participant_id"),
		}
		if ev := t.str(i, "event"); !isMissing(ev) {
			row.Event = ev
		}
		if row.X, err = t.float(i, "x"); err != nil {
			return nil, err
		}
		if row.Y, err = t.float(i, "y"); err != nil {
			return nil, err
		}
		if row.TrialTime, err = t.float(i, "trial_time"); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// LoadDiscrete reads a discrete log file.
func LoadDiscrete(path string) ([]types.DiscreteRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDiscrete(path, f)
}

// ReadDiscrete parses discrete-log CSV from r; name is used in errors.
func ReadDiscrete(name string, r io.Reader) ([]types.DiscreteRow, error) {
	t, err := readTable(name, r, DiscreteColumns)
	if err != nil {
		return nil, err
	}
	withParticipant := t.has("participant_id")
	out := make([]types.DiscreteRow, 0, len(t.rows))
	for i := range t.rows {
		row := types.DiscreteRow{
			TrialID:          t.str(i, "trial"),
			AssignedDelayRaw: t.str(i, "assigned_delay"),
		}
		if withParticipant {
			row.ParticipantID = t.str(i, "participant_id")
		}
		if row.AssignedDelay, err = t.float(i, "assigned_delay"); err != nil {
			return nil, err
		}
		if row.ExplorationTime, err = t.float(i, "exploration_time"); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
