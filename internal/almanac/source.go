package almanac

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// ErrNoRecords is returned when a source has no records on one side of a date.
var ErrNoRecords = errors.New("almanac has no records around date")

// Source supplies the raw almanac records that bracket a date: the last
// term at or before the date's midnight and the first term after it.
type Source interface {
	Window(ctx context.Context, date time.Time) (previous, next string, err error)
}

// Lookup fetches the record pair for date from src and measures it.
func Lookup(ctx context.Context, src Source, date time.Time) (Window, error) {
	previous, next, err := src.Window(ctx, date)
	if err != nil {
		return Window{}, fmt.Errorf("almanac window for %s: %w", date.Format(time.DateOnly), err)
	}
	return Measure(date, previous, next)
}

// FileSource serves windows from an in-memory list of records, typically
// read from an almanac text file.
type FileSource struct {
	records []Record
}

// NewFileSource sorts a copy of records and serves windows from it.
func NewFileSource(records []Record) *FileSource {
	sorted := append([]Record(nil), records...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})
	return &FileSource{records: sorted}
}

// LoadFile reads an almanac text file.
func LoadFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open almanac: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read almanac %s: %w", path, err)
	}
	return NewFileSource(records), nil
}

// ReadRecords parses one record per line, skipping blank lines and lines
// starting with '#'.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan almanac: %w", err)
	}

	return records, nil
}

// WriteRecords writes records in almanac text form, one per line.
func WriteRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := fmt.Fprintln(bw, rec.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Records returns a copy of the loaded records in chronological order.
func (s *FileSource) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Window implements Source.
func (s *FileSource) Window(_ context.Context, date time.Time) (string, string, error) {
	previous, next, err := bracket(s.records, date)
	if err != nil {
		return "", "", err
	}
	return previous.String(), next.String(), nil
}

// bracket finds the records around date's midnight in a sorted slice.
func bracket(records []Record, date time.Time) (Record, Record, error) {
	start := midnight(date)
	i := sort.Search(len(records), func(i int) bool {
		return records[i].At.After(start)
	})
	if i == 0 || i == len(records) {
		return Record{}, Record{}, fmt.Errorf("%w %s", ErrNoRecords, start.Format(time.DateOnly))
	}
	return records[i-1], records[i], nil
}
