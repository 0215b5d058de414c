package survey

import (
	"net/url"
	"strconv"
	"strings"
)

// Request parameter names.
const (
	ParamPage    = "p"
	ParamCounter = "m"
	ParamToken   = "x"
	ParamAnswer  = "a"
)

// Params is everything the engine knows about a participant, carried by
// the request alone.
type Params struct {
	Page    int
	Counter int
	Token   string
	Answers map[int]string
}

// ParseParams reads p, m, x and every a[N] field. Missing, negative or
// non-numeric p and m become 0. Answer keys must be positive integers;
// anything else is ignored. When a field repeats, the first value wins.
func ParseParams(v url.Values) Params {
	p := Params{
		Page:    nonNegative(v.Get(ParamPage)),
		Counter: nonNegative(v.Get(ParamCounter)),
		Token:   v.Get(ParamToken),
		Answers: map[int]string{},
	}
	for key, vals := range v {
		slot, ok := slotFromKey(key)
		if !ok || len(vals) == 0 {
			continue
		}
		p.Answers[slot] = vals[0]
	}
	return p
}

// Values is the inverse of ParseParams.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(p.Page))
	v.Set(ParamCounter, strconv.Itoa(p.Counter))
	if p.Token != "" {
		v.Set(ParamToken, p.Token)
	}
	for slot, val := range p.Answers {
		v.Set(fieldName(slot), val)
	}
	return v
}

func nonNegative(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func slotFromKey(key string) (int, bool) {
	inner, ok := strings.CutPrefix(key, ParamAnswer+"[")
	if !ok {
		return 0, false
	}
	inner, ok = strings.CutSuffix(inner, "]")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func fieldName(slot int) string {
	return ParamAnswer + "[" + strconv.Itoa(slot) + "]"
}
