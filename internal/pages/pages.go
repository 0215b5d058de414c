// Package pages serves survey page bodies from html/template files named
// page-<N>.html. Templates drive the survey.Engine through functions:
//
//	previous N        submitted answer for slot N ("" if none)
//	answered N        whether slot N was submitted at all
//	page              current page index
//	newQuestion [k]   open a question; k is "radio" for a radio group
//	endQuestion       close a question
//	radio v [default] radio choice in the current group
//	checkbox v        checkbox in a new slot
//	textbox [ph [w]]  text input in a new slot ("please specify" by default)
//	beginSelect       open a drop-down in a new slot
//	endSelect a b     numeric options a..b, then close the drop-down
//	placeholder       claim a slot without asking anything
//	submit [label]    hidden progress fields and the submit button
//	skipPage          render the next page instead of this one
//	endSurvey         save the response (prints an error if saving failed)
package pages

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"regexp"
	"strconv"
	"sync"

	"github.com/mind-engage/mindengage-survey/internal/survey"
)

// DefaultPlaceholder is shown in empty text boxes.
const DefaultPlaceholder = "please specify"

var pageFile = regexp.MustCompile(`^page-(\d+)\.html$`)

// Set is a survey.PageSource backed by templates. It is safe for
// concurrent use and can be reloaded in place.
type Set struct {
	fsys fs.FS

	mu    sync.RWMutex
	pages map[int]*template.Template
}

// Load parses every page-<N>.html at the root of fsys.
func Load(fsys fs.FS) (*Set, error) {
	s := &Set{fsys: fsys}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-parses the templates. On error the previous pages stay active.
func (s *Set) Reload() error {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return fmt.Errorf("read pages: %w", err)
	}
	pages := map[int]*template.Template{}
	for _, ent := range entries {
		m := pageFile.FindStringSubmatch(ent.Name())
		if ent.IsDir() || m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("page %s: %w", ent.Name(), err)
		}
		if _, dup := pages[n]; dup {
			return fmt.Errorf("page %d defined twice (%s)", n, ent.Name())
		}
		src, err := fs.ReadFile(s.fsys, ent.Name())
		if err != nil {
			return err
		}
		t, err := template.New(ent.Name()).Funcs(funcs(context.Background(), nil)).Parse(string(src))
		if err != nil {
			return fmt.Errorf("parse %s: %w", ent.Name(), err)
		}
		pages[n] = t
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page-N.html files found")
	}

	s.mu.Lock()
	s.pages = pages
	s.mu.Unlock()
	return nil
}

// Len is the number of loaded pages.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

func (s *Set) Lookup(page int) (survey.PageRenderer, bool) {
	s.mu.RLock()
	t, ok := s.pages[page]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return templatePage{t}, true
}

type templatePage struct{ t *template.Template }

func (p templatePage) RenderPage(ctx context.Context, e *survey.Engine, w io.Writer) error {
	t, err := p.t.Clone()
	if err != nil {
		return err
	}
	return t.Funcs(funcs(ctx, e)).Execute(w, nil)
}

// funcs binds the template functions to one engine. Parsing only needs the
// names, so Reload passes a nil engine.
func funcs(ctx context.Context, e *survey.Engine) template.FuncMap {
	return template.FuncMap{
		"previous": func(slot int) string {
			v, _ := e.PreviousAnswer(slot)
			return v
		},
		"answered": func(slot int) bool {
			_, ok := e.PreviousAnswer(slot)
			return ok
		},
		"page": func() int { return e.CurrentPage() },
		"newQuestion": func(kind ...string) string {
			k := survey.KindNormal
			if len(kind) > 0 {
				k = kind[0]
			}
			e.NewQuestion(k)
			return ""
		},
		"endQuestion": func() string {
			e.EndQuestion()
			return ""
		},
		"radio": func(value any, isDefault ...bool) template.HTML {
			return template.HTML(e.RadioCheckbox(fmt.Sprint(value), len(isDefault) > 0 && isDefault[0]))
		},
		"checkbox": func(value any) template.HTML {
			return template.HTML(e.Checkbox(fmt.Sprint(value)))
		},
		"textbox": func(args ...any) (template.HTML, error) {
			placeholder, width := DefaultPlaceholder, 0
			if len(args) > 2 {
				return "", fmt.Errorf("textbox: at most 2 arguments, got %d", len(args))
			}
			if len(args) > 0 {
				placeholder = fmt.Sprint(args[0])
			}
			if len(args) > 1 {
				w, ok := args[1].(int)
				if !ok {
					return "", fmt.Errorf("textbox: width must be an integer, got %T", args[1])
				}
				width = w
			}
			return template.HTML(e.Textbox(placeholder, width)), nil
		},
		"beginSelect": func() template.HTML { return template.HTML(e.BeginSelectOne()) },
		"endSelect": func(first, last int) template.HTML {
			return template.HTML(e.EndSelectOne(first, last))
		},
		"placeholder": func() template.HTML { return template.HTML(e.Placeholder()) },
		"submit": func(label ...string) template.HTML {
			l := ""
			if len(label) > 0 {
				l = label[0]
			}
			return template.HTML(e.SubmitButton(l))
		},
		"skipPage": func() string {
			e.SkipPage()
			return ""
		},
		"endSurvey": func() template.HTML { return template.HTML(e.EndSurvey(ctx)) },
	}
}
