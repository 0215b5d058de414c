// Package metrics holds the Prometheus collectors for the survey server.
// Each Collector owns its registry so tests can build as many as they like.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/mind-engage/mindengage-survey/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	PagesRendered  *prometheus.CounterVec
	PageSkips      prometheus.Counter
	RowsAppended   *prometheus.CounterVec
	RenderDuration prometheus.Histogram
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		PagesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "survey",
			Name:      "pages_rendered_total",
			Help:      "Survey page requests by outcome",
		}, []string{"status"}),
		PageSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "survey",
			Name:      "page_skips_total",
			Help:      "Pages skipped by branching logic",
		}),
		RowsAppended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "survey",
			Name:      "rows_appended_total",
			Help:      "Result rows written, by sink and outcome",
		}, []string{"sink", "status"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "survey",
			Name:      "render_duration_seconds",
			Help:      "Time to compose one survey page",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.PagesRendered, c.PageSkips, c.RowsAppended, c.RenderDuration)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObservePage records one page request.
func (c *Collector) ObservePage(status string, skips int, took time.Duration) {
	c.PagesRendered.WithLabelValues(status).Inc()
	c.PageSkips.Add(float64(skips))
	c.RenderDuration.Observe(took.Seconds())
}

// Sink counts every append passing through s under the given name.
func (c *Collector) Sink(name string, s storage.Sink) storage.Sink {
	return storage.SinkFunc(func(ctx context.Context, r storage.Row) error {
		err := s.Append(ctx, r)
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.RowsAppended.WithLabelValues(name, status).Inc()
		return err
	})
}
