package types

import (
	"fmt"
	"strings"
)

// NotFoundError reports a missing participant folder, data directory or log file.
type NotFoundError struct {
	What string // e.g. "subfolder", "data directory", "continuous log"
	Path string // directory searched or path expected
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Path)
}

// ParseError reports a malformed CSV file or a missing required column.
type ParseError struct {
	File   string
	Line   int    // 1-based; 0 when the problem is not tied to a line
	Column string // empty when not column specific
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	b.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingDiscreteDataError reports a trial with no discrete-log row.
type MissingDiscreteDataError struct {
	TrialID string
}

func (e *MissingDiscreteDataError) Error() string {
	return fmt.Sprintf("no discrete data for trial %s", e.TrialID)
}

// NoDataError reports that a participant filter left nothing to plot.
type NoDataError struct {
	Participants []string
}

func (e *NoDataError) Error() string {
	if len(e.Participants) == 0 {
		return "no data to plot"
	}
	return fmt.Sprintf("no data found for participants %s", strings.Join(e.Participants, ", "))
}
