package storage

import (
	"context"
	"strconv"
	"time"
)

// TimeLayout is the timestamp format of the first field of every row.
const TimeLayout = "2006-01-02T15:04:05-07:00"

// Row is one persisted survey response, either complete or a partial
// snapshot taken when a page is shown.
type Row struct {
	Time        time.Time
	Partial     bool   // participant and page columns are present only when set
	Participant string
	Page        int
	Answers     []string // slot 1..counter, empty string for unanswered slots
}

// Fields returns the row in results-file column order:
// timestamp, [participant, page,] answers...
func (r Row) Fields() []string {
	out := make([]string, 0, len(r.Answers)+3)
	out = append(out, r.Time.Local().Format(TimeLayout))
	if r.Partial {
		out = append(out, r.Participant, strconv.Itoa(r.Page))
	}
	return append(out, r.Answers...)
}

// Sink receives result rows.
type Sink interface {
	Append(ctx context.Context, r Row) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, r Row) error

func (f SinkFunc) Append(ctx context.Context, r Row) error { return f(ctx, r) }

// Discard drops every row.
var Discard Sink = SinkFunc(func(context.Context, Row) error { return nil })
