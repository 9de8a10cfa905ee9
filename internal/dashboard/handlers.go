package dashboard

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// metricsRequest computes metrics for a result the caller already holds.
type metricsRequest struct {
	Molecule string              `json:"molecule"`
	Overlay  *simulation.Overlay `json:"overlay"`
}

// resolve reads ?molecule= and, unless ?simulate=false, fetches a result.
func (d *Dashboard) resolve(r *http.Request) (molecule.Entry, *simulation.Overlay) {
	name := r.URL.Query().Get("molecule")
	if name == "" {
		name = d.defaultMolecule
	}
	entry := molecule.GetOrDefault(name)
	if r.URL.Query().Get("simulate") == "false" {
		return entry, nil
	}
	o := d.client.Simulate(r.Context(), simulation.Request{
		Molecule: entry.Key,
		Method:   r.URL.Query().Get("method"),
	})
	return entry, o
}

func (d *Dashboard) handleMetrics(w http.ResponseWriter, r *http.Request) {
	entry, o := d.resolve(r)
	writeJSON(w, http.StatusOK, Compute(entry, o))
}

func (d *Dashboard) handleMetricsFor(w http.ResponseWriter, r *http.Request) {
	var req metricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	writeJSON(w, http.StatusOK, Compute(molecule.GetOrDefault(req.Molecule), req.Overlay))
}

func (d *Dashboard) handleReport(w http.ResponseWriter, r *http.Request) {
	entry, o := d.resolve(r)
	md, err := Markdown(Compute(entry, o), o)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	body, err := d.HTML(md)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, pageData{
		Title:     entry.Name,
		Molecules: molecule.Keys(),
		Body:      template.HTML(body),
	}); err != nil {
		log.Printf("dashboard: rendering page: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
