package survey

import (
	"html"
	"strconv"
	"strings"
)

// Question kinds accepted by NewQuestion.
const (
	KindNormal = "normal"
	KindRadio  = "radio"
)

// MaxSelectOptions caps the numeric range EndSelectOne generates.
const MaxSelectOptions = 501

// NewQuestion opens a question. A radio group claims a single slot here,
// shared by every RadioCheckbox until the next NewQuestion; other kinds
// leave allocation to each control.
func (e *Engine) NewQuestion(kind string) {
	if kind == KindRadio {
		e.counter++
	}
}

// EndQuestion closes a question. It currently does nothing.
func (e *Engine) EndQuestion() {}

func (e *Engine) currentField() string { return fieldName(e.counter) }

// RadioCheckbox renders one choice of the current radio group. It reuses
// the slot claimed by NewQuestion(KindRadio).
func (e *Engine) RadioCheckbox(value string, isDefault bool) string {
	var b strings.Builder
	b.WriteString(`<input type="radio" name="`)
	b.WriteString(e.currentField())
	b.WriteString(`" value="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`" required`)
	if isDefault {
		b.WriteString(" checked")
	}
	b.WriteString(">")
	return b.String()
}

// Checkbox renders an optional checkbox in a slot of its own.
func (e *Engine) Checkbox(value string) string {
	e.counter++
	return `<input type="checkbox" name="` + e.currentField() + `" value="` + html.EscapeString(value) + `">`
}

// Textbox renders a single-line text input in a slot of its own. An empty
// placeholder is omitted, as is a width below 1.
func (e *Engine) Textbox(placeholder string, width int) string {
	e.counter++
	var b strings.Builder
	b.WriteString(`<input type="text" name="`)
	b.WriteString(e.currentField())
	b.WriteString(`"`)
	if placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(placeholder))
		b.WriteString(`"`)
	}
	if width > 0 {
		b.WriteString(` size="`)
		b.WriteString(strconv.Itoa(width))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}

// BeginSelectOne opens a drop-down in a slot of its own. Options may be
// written between it and EndSelectOne.
func (e *Engine) BeginSelectOne() string {
	e.counter++
	return `<select name="` + e.currentField() + `">` + "\n"
}

// EndSelectOne appends one option per integer in [first, last] and closes
// the drop-down. The range is clamped to MaxSelectOptions values; an empty
// range (last < first) adds nothing.
func (e *Engine) EndSelectOne(first, last int) string {
	var b strings.Builder
	// No first+N arithmetic: i stops at last, which may be math.MaxInt.
	for i, n := first, 0; last >= first && n < MaxSelectOptions; i, n = i+1, n+1 {
		v := strconv.Itoa(i)
		b.WriteString(`<option value="`)
		b.WriteString(v)
		b.WriteString(`">`)
		b.WriteString(v)
		b.WriteString("</option>\n")
		if i == last {
			break
		}
	}
	b.WriteString("</select>")
	return b.String()
}

// Placeholder claims a slot without asking anything, so that omitting a
// question conditionally keeps later slot numbers stable.
func (e *Engine) Placeholder() string {
	e.counter++
	return `<input type="hidden" name="` + e.currentField() + `" value="">`
}

// DefaultSubmitLabel is the button text used when none is given.
const DefaultSubmitLabel = "Continue"

// SubmitButton emits the next page index, the slot counter reached so far
// and, in partial-save mode, the participant token, followed by the button.
// label is authored markup and is not escaped.
func (e *Engine) SubmitButton(label string) string {
	if label == "" {
		label = DefaultSubmitLabel
	}
	var b strings.Builder
	b.WriteString(hidden(ParamCounter, strconv.Itoa(max(0, e.counter))))
	b.WriteString(hidden(ParamPage, strconv.Itoa(e.page+1)))
	if e.savePartial {
		b.WriteString(hidden(ParamToken, e.token))
	}
	b.WriteString(`<button type="submit">`)
	b.WriteString(label)
	b.WriteString("</button>")
	return b.String()
}
