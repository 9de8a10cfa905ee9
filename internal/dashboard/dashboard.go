// Package dashboard formats simulation results into agricultural-impact
// metrics and serves them as JSON and as a rendered report.
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/ziadkadry99/molview/internal/simulation"
)

// Dashboard serves the metrics report and the viewer index page.
type Dashboard struct {
	client          *simulation.Client
	md              goldmark.Markdown
	defaultMolecule string
}

// New creates a Dashboard. A nil client serves demo results only.
func New(client *simulation.Client, defaultMolecule string) *Dashboard {
	if client == nil {
		client = simulation.NewClient(simulation.Options{})
	}
	return &Dashboard{
		client:          client,
		md:              newMarkdown(),
		defaultMolecule: defaultMolecule,
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/dashboard", d.handleReport)
	r.Get("/api/dashboard/metrics", d.handleMetrics)
	r.Post("/api/dashboard/metrics", d.handleMetricsFor)
}
