// Package survey renders multi-page, branching questionnaires without
// cookies or server-side sessions. Every answer given so far travels with
// the form as hidden fields; completed (or, in partial-save mode, every
// page's) responses are appended to a storage.Sink.
//
// An Engine lives for exactly one request.
package survey

import (
	"context"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/mind-engage/mindengage-survey/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configure an Engine. Zero values are usable.
type Options struct {
	SavePartial bool
	Pages       PageSource
	Logger      *zap.Logger
	Now         func() time.Time
	NewToken    func() string

	// MaxSkips bounds how many times SkipPage may advance within a single
	// Page call. 0 leaves the chain unbounded.
	MaxSkips int
}

type Engine struct {
	sink        storage.Sink
	pages       PageSource
	log         *zap.Logger
	now         func() time.Time
	savePartial bool
	maxSkips    int

	answers map[int]string
	page    int
	counter int
	token   string

	skip  bool
	skips int
}

// New reconstructs the participant's state from params. In partial-save
// mode a missing token is replaced with a fresh one, which the submit
// button then carries forward.
func New(params Params, sink storage.Sink, opts Options) *Engine {
	if sink == nil {
		sink = storage.Discard
	}
	e := &Engine{
		sink:        sink,
		pages:       opts.Pages,
		log:         opts.Logger,
		now:         opts.Now,
		savePartial: opts.SavePartial,
		maxSkips:    opts.MaxSkips,
		answers:     params.Answers,
		page:        max(0, params.Page),
		counter:     max(0, params.Counter),
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.answers == nil {
		e.answers = map[int]string{}
	}
	if e.savePartial {
		e.token = params.Token
		if e.token == "" {
			gen := opts.NewToken
			if gen == nil {
				gen = NewToken
			}
			e.token = gen()
		}
	}
	return e
}

// NewToken returns 32 random hex characters.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CurrentPage is the page index being rendered.
func (e *Engine) CurrentPage() int { return e.page }

// Counter is the highest answer slot allocated so far.
func (e *Engine) Counter() int { return e.counter }

// Token is the participant token; empty unless in partial-save mode.
func (e *Engine) Token() string { return e.token }

// Skips reports how many pages SkipPage has advanced past.
func (e *Engine) Skips() int { return e.skips }

// SavePartial reports whether every page view saves a snapshot row.
func (e *Engine) SavePartial() bool { return e.savePartial }

// PreviousAnswer returns the value submitted for slot, if any. This is the
// only input available for branching decisions.
func (e *Engine) PreviousAnswer(slot int) (string, bool) {
	v, ok := e.answers[slot]
	return v, ok
}

// ProgressVars re-emits every non-empty submitted answer as a hidden field,
// in slot order. Empty answers are dropped and look unanswered on the next
// request.
func (e *Engine) ProgressVars() string {
	slots := make([]int, 0, len(e.answers))
	for slot, v := range e.answers {
		if v != "" {
			slots = append(slots, slot)
		}
	}
	sort.Ints(slots)

	var b strings.Builder
	for _, slot := range slots {
		b.WriteString(hidden(fieldName(slot), e.answers[slot]))
	}
	return b.String()
}

// row builds the results row for the current state: answers for slots
// 1..counter, padded with empty strings.
func (e *Engine) row() storage.Row {
	answers := make([]string, e.counter)
	for i := range answers {
		answers[i] = e.answers[i+1]
	}
	r := storage.Row{Time: e.now(), Answers: answers}
	if e.savePartial {
		r.Partial = true
		r.Participant = e.token
		r.Page = e.page
	}
	return r
}

// saveFailed is shown in place of a row that could not be written.
const saveFailed = "<p><b>Error:</b> Saving failed!</p>\n"

// saveAnswers appends the current row. On failure it returns inline error
// markup; the survey carries on either way.
func (e *Engine) saveAnswers(ctx context.Context) string {
	r := e.row()
	if err := e.sink.Append(ctx, r); err != nil {
		e.log.Error("saving answers failed",
			zap.Int("page", e.page),
			zap.Int("counter", e.counter),
			zap.Bool("partial", r.Partial),
			zap.Error(err))
		return saveFailed
	}
	return ""
}

// EndSurvey saves the final row unless in partial-save mode, where Page has
// already saved one for this visit. The result is inline error markup, or
// empty on success.
func (e *Engine) EndSurvey(ctx context.Context) string {
	if e.savePartial {
		return ""
	}
	return e.saveAnswers(ctx)
}

func hidden(name, value string) string {
	return `<input type="hidden" name="` + name + `" value="` + html.EscapeString(value) + "\">\n"
}
