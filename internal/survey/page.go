package survey

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrTooManySkips = errors.New("too many consecutive skipped pages")
)

// PageRenderer writes the body of one survey page. It calls the engine's
// control helpers to build its inputs and may call SkipPage to have the
// next page rendered instead.
type PageRenderer interface {
	RenderPage(ctx context.Context, e *Engine, w io.Writer) error
}

// PageRendererFunc adapts a function to a PageRenderer.
type PageRendererFunc func(ctx context.Context, e *Engine, w io.Writer) error

func (f PageRendererFunc) RenderPage(ctx context.Context, e *Engine, w io.Writer) error {
	return f(ctx, e, w)
}

// PageSource looks up the renderer for a page index.
type PageSource interface {
	Lookup(page int) (PageRenderer, bool)
}

// Pages is a PageSource backed by a map.
type Pages map[int]PageRenderer

// Lookup returns the renderer registered for page.
func (p Pages) Lookup(page int) (PageRenderer, bool) {
	r, ok := p[page]
	return r, ok
}

// SkipPage advances to the next page and asks Page to render it in place
// of the current one.
func (e *Engine) SkipPage() {
	e.skip = true
	e.page++
	e.skips++
}

// Page composes the form for the current page: progress fields, then (in
// partial-save mode) a snapshot row of the answers received so far, then
// the page body. The body is rendered again for every SkipPage call until a
// pass completes without one. A skip chain has no bound unless
// Options.MaxSkips is set.
func (e *Engine) Page(ctx context.Context) (string, error) {
	var out strings.Builder
	out.WriteString("<form method=\"post\">\n")
	out.WriteString(e.ProgressVars())

	if e.savePartial {
		out.WriteString(e.saveAnswers(ctx))
	}

	var body strings.Builder
	for {
		if e.maxSkips > 0 && e.skips > e.maxSkips {
			return "", fmt.Errorf("page %d: %w", e.page, ErrTooManySkips)
		}
		r, ok := e.lookup(e.page)
		if !ok {
			return "", fmt.Errorf("page %d: %w", e.page, ErrPageNotFound)
		}

		body.Reset()
		e.skip = false
		if err := r.RenderPage(ctx, e, &body); err != nil {
			return "", fmt.Errorf("render page %d: %w", e.page, err)
		}
		if !e.skip {
			break
		}
		e.log.Debug("page skipped", zap.Int("next", e.page))
	}

	out.WriteString(body.String())
	out.WriteString("</form>\n")
	return out.String(), nil
}

func (e *Engine) lookup(page int) (PageRenderer, bool) {
	if e.pages == nil {
		return nil, false
	}
	r, ok := e.pages.Lookup(page)
	return r, ok && r != nil
}
