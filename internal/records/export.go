package records

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVColumns is the fixed column order of the session export.
var CSVColumns = []string{"sessionId", "name", "score", "lives", "startedAt", "endedAt", "status"}

// ExportFileName is the default name of the exported session log.
const ExportFileName = "waddle_sessions.csv"

// WriteCSV writes the session log as CSV: a header line, then one line per
// record in storage order. Every data field is quoted.
func (b *Book) WriteCSV(ctx context.Context, w io.Writer) error {
	list, err := b.Sessions(ctx)
	if err != nil {
		return err
	}
	return EncodeCSV(w, list)
}

// ExportSessions returns the CSV export of the session log.
func (b *Book) ExportSessions(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteCSV(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeCSV writes list in the export format.
func EncodeCSV(w io.Writer, list []SessionRecord) error {
	if _, err := io.WriteString(w, strings.Join(CSVColumns, ",")+"\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range list {
		fields := []string{
			r.SessionID,
			r.Name,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Lives),
			isoTime(r.StartedAt),
			isoTime(r.EndedAt),
			r.Status,
		}
		for i, f := range fields {
			fields[i] = quote(f)
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}

// quote wraps s in double quotes, doubling any embedded quote.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// isoTime formats t as a UTC ISO-8601 timestamp with milliseconds.
func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
