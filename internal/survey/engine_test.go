package survey

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/mind-engage/mindengage-survey/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 10, 30, 0, 0, time.FixedZone("EST", -5*3600))

// recordingSink keeps every appended row.
type recordingSink struct {
	rows []storage.Row
	err  error
}

func (s *recordingSink) Append(_ context.Context, r storage.Row) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, r)
	return nil
}

func testOptions(partial bool) Options {
	return Options{
		SavePartial: partial,
		Now:         func() time.Time { return fixedNow },
		NewToken:    func() string { return "tok-fresh" },
	}
}

func TestNewWithoutParams(t *testing.T) {
	e := New(ParseParams(url.Values{}), nil, testOptions(false))
	assert.Equal(t, 0, e.CurrentPage())
	assert.Equal(t, 0, e.Counter())
	assert.Empty(t, e.Token(), "no token outside partial-save mode")

	e = New(ParseParams(url.Values{}), nil, Options{SavePartial: true})
	assert.Len(t, e.Token(), 32)
	assert.NotEqual(t, e.Token(), New(Params{}, nil, Options{SavePartial: true}).Token())
}

func TestNewAdoptsToken(t *testing.T) {
	e := New(Params{Token: "carried"}, nil, testOptions(true))
	assert.Equal(t, "carried", e.Token())

	e = New(Params{Token: ""}, nil, testOptions(true))
	assert.Equal(t, "tok-fresh", e.Token())
}

func TestPreviousAnswer(t *testing.T) {
	e := New(Params{Answers: map[int]string{2: "blue", 3: ""}}, nil, testOptions(false))

	v, ok := e.PreviousAnswer(2)
	assert.True(t, ok)
	assert.Equal(t, "blue", v)

	v, ok = e.PreviousAnswer(3)
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = e.PreviousAnswer(1)
	assert.False(t, ok)
}

func TestProgressVars(t *testing.T) {
	e := New(Params{Answers: map[int]string{
		3: `say "hi" <b>`,
		1: "one",
		2: "",
	}}, nil, testOptions(false))

	want := `<input type="hidden" name="a[1]" value="one">` + "\n" +
		`<input type="hidden" name="a[3]" value="say &#34;hi&#34; &lt;b&gt;">` + "\n"
	assert.Equal(t, want, e.ProgressVars())
}

func TestProgressVarsRoundTrip(t *testing.T) {
	prev := map[int]string{1: "x", 2: "", 4: "a&b"}
	e := New(Params{Answers: prev}, nil, testOptions(false))

	form, err := url.ParseQuery(hiddenFieldsToQuery(t, e.ProgressVars()))
	require.NoError(t, err)
	next := New(ParseParams(form), nil, testOptions(false))

	for slot, want := range prev {
		got, ok := next.PreviousAnswer(slot)
		if want == "" {
			assert.False(t, ok, "empty slot %d is not carried", slot)
			continue
		}
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestEndSurveySavesOnce(t *testing.T) {
	sink := &recordingSink{}
	e := New(Params{Counter: 1, Answers: map[int]string{1: "yes", 3: "later"}}, sink, testOptions(false))
	e.Textbox("", 0)
	e.NewQuestion(KindRadio)
	e.RadioCheckbox("a", false)
	e.EndQuestion()

	assert.Empty(t, e.EndSurvey(context.Background()))
	require.Len(t, sink.rows, 1)
	row := sink.rows[0]
	assert.False(t, row.Partial)
	assert.Equal(t, []string{"yes", "", "later"}, row.Answers)
	assert.Equal(t, fixedNow, row.Time)
	assert.Empty(t, row.Participant)
}

func TestEndSurveyPartialModeDoesNotSave(t *testing.T) {
	sink := &recordingSink{}
	e := New(Params{Counter: 2}, sink, testOptions(true))
	assert.Empty(t, e.EndSurvey(context.Background()))
	assert.Empty(t, sink.rows)
}

func TestEndSurveyReportsFailureInline(t *testing.T) {
	sink := &recordingSink{err: errors.New("disk full")}
	e := New(Params{}, sink, testOptions(false))
	assert.Equal(t, "<p><b>Error:</b> Saving failed!</p>\n", e.EndSurvey(context.Background()))
}
