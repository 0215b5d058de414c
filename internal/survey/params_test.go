package survey

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParamsDefaults(t *testing.T) {
	p := ParseParams(url.Values{})
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, 0, p.Counter)
	assert.Empty(t, p.Token)
	assert.Empty(t, p.Answers)
}

func TestParseParamsMalformedNumbers(t *testing.T) {
	for _, tc := range []struct{ p, m string }{
		{"abc", "1.5"},
		{"-3", "-1"},
		{"", " "},
	} {
		got := ParseParams(url.Values{"p": {tc.p}, "m": {tc.m}})
		assert.Equal(t, 0, got.Page, "p=%q", tc.p)
		assert.Equal(t, 0, got.Counter, "m=%q", tc.m)
	}
}

func TestParseParamsAnswers(t *testing.T) {
	v := url.Values{
		"p":     {"2"},
		"m":     {"7"},
		"x":     {"tok"},
		"a[1]":  {"yes", "ignored"},
		"a[3]":  {""},
		"a[0]":  {"zero"},
		"a[-2]": {"neg"},
		"a[b]":  {"name"},
		"a[4":   {"broken"},
		"other": {"z"},
	}
	p := ParseParams(v)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 7, p.Counter)
	assert.Equal(t, "tok", p.Token)
	assert.Equal(t, map[int]string{1: "yes", 3: ""}, p.Answers)
}

func TestParamsValuesRoundTrip(t *testing.T) {
	in := Params{Page: 3, Counter: 5, Token: "abc", Answers: map[int]string{1: "a", 5: "b & c"}}
	assert.Equal(t, in, ParseParams(in.Values()))
}
