// Package sessionlog keeps the append-only CSV log of completed work
// intervals and sums it per day.
package sessionlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultPath is the log file name, relative to the working directory.
const DefaultPath = "pomodoro_log.csv"

const (
	dateColumn    = "Date"
	minutesColumn = "Minutes"
	dateLayout    = "2006-01-02"
)

// ErrInvalidRecord is returned by Append for a malformed date or a
// non-positive minute count.
var ErrInvalidRecord = errors.New("invalid log record")

// Record is one completed work interval.
type Record struct {
	Date    string
	Minutes int
}

// IOError reports a failure opening, reading or writing the log file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("session log %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a row that could not be parsed. Line is 1-based and
// counts the header.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("session log line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("session log line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Log is a CSV file of Records. It holds no state besides its path; every
// call goes to disk.
type Log struct {
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

func (l *Log) Path() string {
	return l.path
}

// Append writes one record, writing the header first if the file does
// not exist yet.
func (l *Log) Append(date string, minutes int) (err error) {
	if _, perr := time.Parse(dateLayout, date); perr != nil {
		return fmt.Errorf("%w: date %q: %v", ErrInvalidRecord, date, perr)
	}
	if minutes <= 0 {
		return fmt.Errorf("%w: minutes must be positive, got %d", ErrInvalidRecord, minutes)
	}

	_, statErr := os.Stat(l.path)
	exists := statErr == nil

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &IOError{Op: "open", Path: l.path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: l.path, Err: cerr}
		}
	}()

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write([]string{dateColumn, minutesColumn}); err != nil {
			return &IOError{Op: "write", Path: l.path, Err: err}
		}
	}
	if err := w.Write([]string{date, strconv.Itoa(minutes)}); err != nil {
		return &IOError{Op: "write", Path: l.path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &IOError{Op: "write", Path: l.path, Err: err}
	}
	return nil
}

// Records returns every row in file order. A missing file yields no
// records and no error.
func (l *Log) Records() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &IOError{Op: "open", Path: l.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, l.readError(err)
	}
	dateIdx, minIdx, err := columns(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, l.readError(err)
		}
		line, _ := r.FieldPos(0)
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if dateIdx >= len(row) || minIdx >= len(row) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected at least %d fields, got %d", max(dateIdx, minIdx)+1, len(row))}
		}
		raw := strings.TrimSpace(row[minIdx])
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ParseError{Line: line, Column: minutesColumn, Value: raw, Err: err}
		}
		records = append(records, Record{Date: strings.TrimSpace(row[dateIdx]), Minutes: minutes})
	}
	return records, nil
}

// AggregateByDate sums minutes per date. A missing file is empty history.
func (l *Log) AggregateByDate() (DailyAggregate, error) {
	records, err := l.Records()
	if err != nil {
		return DailyAggregate{}, err
	}
	return Aggregate(records), nil
}

func (l *Log) readError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Err: perr.Err}
	}
	return &IOError{Op: "read", Path: l.path, Err: err}
}

func columns(header []string) (dateIdx, minIdx int, err error) {
	dateIdx, minIdx = -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case dateColumn:
			dateIdx = i
		case minutesColumn:
			minIdx = i
		}
	}
	if dateIdx < 0 || minIdx < 0 {
		return 0, 0, &ParseError{Line: 1, Err: fmt.Errorf("header must contain %s and %s columns, got %q", dateColumn, minutesColumn, header)}
	}
	return dateIdx, minIdx, nil
}
