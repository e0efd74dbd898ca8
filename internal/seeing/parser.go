package seeing

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Seeing log line layout. The first six whitespace-delimited columns occupy a
// fixed 37-byte field; the raw FWHM samples follow as a semicolon-delimited
// run ending in a trailing semicolon, never extending past byte 90.
const (
	rawSectionStart = 37
	rawSectionEnd   = 90
)

// Parse reads a seeing monitor log from r and returns the parsed dataset.
// Structurally broken lines are skipped with a warning. Malformed numeric
// fields inside an otherwise valid line become a 0 sentinel so that the
// vetting passes remove them later.
func Parse(r io.Reader, logger *slog.Logger) (*Dataset, error) {
	scanner := bufio.NewScanner(r)
	ds := &Dataset{}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			logger.Warn("skipping malformed seeing log line", "line", lineNo, "error", err)
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading seeing log: %w", err)
	}

	return ds, nil
}

func parseLine(line string) (Record, error) {
	head := line
	if len(head) > rawSectionStart {
		head = head[:rawSectionStart]
	}

	fields := strings.Fields(head)
	if len(fields) < 6 {
		return Record{}, fmt.Errorf("expected 6 columns, got %d", len(fields))
	}

	ts, err := parseTimestamp(fields[0], fields[1])
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Timestamp: ts,
		DayOfYear: fractionalDayOfYear(ts),
		TimeOfDay: float64(ts.Hour()) + float64(ts.Minute())/60.0 + float64(ts.Second())/3600.0,
	}

	// Malformed numeric fields become a 0 sentinel rather than failing the line.
	rec.Fmin, _ = strconv.Atoi(fields[2])
	rec.Fmax, _ = strconv.Atoi(fields[3])
	rec.FWHMAve, _ = strconv.ParseFloat(fields[4], 64)
	rec.NPts, _ = strconv.Atoi(fields[5])

	rec.Raw, rec.BadRaw = parseRawSection(line)

	return rec, nil
}

// parseTimestamp combines the HH:MM:SS and MM/DD/YYYY columns.
func parseTimestamp(timeStr, dateStr string) (time.Time, error) {
	clock, err := time.Parse("15:04:05", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	date, err := time.Parse("1/2/2006", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
}

func fractionalDayOfYear(t time.Time) float64 {
	return float64(t.YearDay()) +
		float64(t.Hour())/24.0 +
		float64(t.Minute())/(24.0*60.0) +
		float64(t.Second())/(24.0*3600.0)
}

// parseRawSection extracts the semicolon-delimited raw FWHM samples. Empty
// fields are dropped, unparseable fields become 0 and flag the record.
func parseRawSection(line string) ([]float64, bool) {
	if len(line) <= rawSectionStart {
		return nil, false
	}
	end := len(line)
	if end > rawSectionEnd {
		end = rawSectionEnd
	}

	parts := strings.Split(line[rawSectionStart:end], ";")
	// The run ends with a trailing semicolon; drop the fragment after it.
	if len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}

	var (
		vals []float64
		bad  bool
	)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			bad = true
			v = 0
		}
		vals = append(vals, v)
	}
	return vals, bad
}
