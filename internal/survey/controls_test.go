package survey

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonRadioControlsAllocateContiguousSlots(t *testing.T) {
	e := New(Params{Counter: 4}, nil, testOptions(false))

	assert.Equal(t, `<input type="text" name="a[5]" placeholder="please specify">`, e.Textbox("please specify", 0))
	assert.Equal(t, `<input type="checkbox" name="a[6]" value="x">`, e.Checkbox("x"))
	assert.Equal(t, `<input type="hidden" name="a[7]" value="">`, e.Placeholder())
	assert.Equal(t, "<select name=\"a[8]\">\n", e.BeginSelectOne())
	e.EndSelectOne(1, 0)
	assert.Equal(t, `<input type="text" name="a[9]" size="12">`, e.Textbox("", 12))
	assert.Equal(t, 9, e.Counter())
}

func TestRadioGroupSharesSlot(t *testing.T) {
	e := New(Params{Counter: 2}, nil, testOptions(false))

	e.NewQuestion(KindRadio)
	a := e.RadioCheckbox("a", false)
	b := e.RadioCheckbox(`b"c`, true)
	e.EndQuestion()

	assert.Equal(t, `<input type="radio" name="a[3]" value="a" required>`, a)
	assert.Equal(t, `<input type="radio" name="a[3]" value="b&#34;c" required checked>`, b)
	assert.Equal(t, 3, e.Counter())

	e.NewQuestion(KindNormal)
	assert.Equal(t, 3, e.Counter(), "normal questions allocate per control")
	e.Checkbox("1")
	e.EndQuestion()

	e.NewQuestion(KindRadio)
	assert.Contains(t, e.RadioCheckbox("z", false), `name="a[5]"`)
}

func TestCheckboxEscapesValue(t *testing.T) {
	e := New(Params{}, nil, testOptions(false))
	assert.Equal(t, `<input type="checkbox" name="a[1]" value="&lt;script&gt;">`, e.Checkbox("<script>"))
}

func TestEndSelectOneRange(t *testing.T) {
	e := New(Params{}, nil, testOptions(false))
	e.BeginSelectOne()
	got := e.EndSelectOne(3, 5)
	assert.Equal(t,
		"<option value=\"3\">3</option>\n<option value=\"4\">4</option>\n<option value=\"5\">5</option>\n</select>",
		got)
	assert.Equal(t, "</select>", e.EndSelectOne(5, 4))
}

func TestEndSelectOneIsClamped(t *testing.T) {
	e := New(Params{}, nil, testOptions(false))
	for _, tc := range []struct{ first, last, want int }{
		{0, 1_000_000, 501},
		{-250, 250, 501},
		{10, 510, 501},
		{10, 509, 500},
	} {
		got := strings.Count(e.EndSelectOne(tc.first, tc.last), "<option ")
		assert.Equal(t, tc.want, got, "first=%d last=%d", tc.first, tc.last)
	}
	assert.Contains(t, e.EndSelectOne(0, 1_000_000), `<option value="500">`)
	assert.NotContains(t, e.EndSelectOne(0, 1_000_000), `<option value="501">`)
}

func TestEndSelectOneAtIntLimits(t *testing.T) {
	e := New(Params{}, nil, testOptions(false))
	for _, tc := range []struct{ first, last, want int }{
		{math.MaxInt - 10, math.MaxInt, 11},
		{math.MaxInt, math.MaxInt, 1},
		{math.MaxInt - 1000, math.MaxInt, 501},
		{math.MinInt, math.MaxInt, 501},
		{math.MaxInt, math.MinInt, 0},
	} {
		got := strings.Count(e.EndSelectOne(tc.first, tc.last), "<option ")
		assert.Equal(t, tc.want, got, "first=%d last=%d", tc.first, tc.last)
	}
	top := strconv.Itoa(math.MaxInt)
	assert.Contains(t, e.EndSelectOne(math.MaxInt-1, math.MaxInt), `<option value="`+top+`">`+top+`</option>`)
}

func TestSubmitButton(t *testing.T) {
	e := New(Params{Page: 2, Counter: 3}, nil, testOptions(false))
	e.Textbox("", 0)

	want := `<input type="hidden" name="m" value="4">` + "\n" +
		`<input type="hidden" name="p" value="3">` + "\n" +
		`<button type="submit">Continue</button>`
	assert.Equal(t, want, e.SubmitButton(""))
	assert.Contains(t, e.SubmitButton("<b>Done</b>"), "<button type=\"submit\"><b>Done</b></button>")
}

func TestSubmitButtonCarriesToken(t *testing.T) {
	e := New(Params{Token: `t"1`}, nil, testOptions(true))
	assert.Contains(t, e.SubmitButton("Next"), `<input type="hidden" name="x" value="t&#34;1">`)

	e = New(Params{Token: "ignored"}, nil, testOptions(false))
	assert.NotContains(t, e.SubmitButton("Next"), `name="x"`)
}
