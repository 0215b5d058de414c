package http

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/mind-engage/mindengage-survey/internal/metrics"
	"github.com/mind-engage/mindengage-survey/internal/storage"
	"github.com/mind-engage/mindengage-survey/internal/survey"

	"go.uber.org/zap"
)

// SurveyDeps is what the survey handler needs per request.
type SurveyDeps struct {
	Title       string
	Pages       survey.PageSource
	Sink        storage.Sink
	SavePartial bool
	MaxSkips    int
	Logger      *zap.Logger
	Metrics     *metrics.Collector // optional
}

var document = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
</head>
<body>
{{ .Body }}</body>
</html>
`))

// SurveyHandler renders the page named by the request's p parameter. The
// participant's whole state comes from the query string or form body.
func SurveyHandler(d SurveyDeps) http.HandlerFunc {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	title := d.Title
	if title == "" {
		title = "Survey"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		e := survey.New(survey.ParseParams(r.Form), d.Sink, survey.Options{
			SavePartial: d.SavePartial,
			Pages:       d.Pages,
			Logger:      log,
			MaxSkips:    d.MaxSkips,
		})

		body, err := e.Page(r.Context())
		status := "ok"
		defer func() {
			if d.Metrics != nil {
				d.Metrics.ObservePage(status, e.Skips(), time.Since(start))
			}
		}()
		if err != nil {
			switch {
			case errors.Is(err, survey.ErrPageNotFound):
				status = "not_found"
				http.Error(w, "no such page", http.StatusNotFound)
			default:
				status = "error"
				log.Error("render survey page", zap.Int("page", e.CurrentPage()), zap.Error(err))
				http.Error(w, "could not render page", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := document.Execute(w, struct {
			Title string
			Body  template.HTML
		}{title, template.HTML(body)}); err != nil {
			log.Warn("write survey page", zap.Error(err))
		}
	}
}
