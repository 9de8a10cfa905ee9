package live

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/render"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
)

func (s *Service) handleListMolecules(w http.ResponseWriter, r *http.Request) {
	entries := molecule.All()
	out := make([]moleculeSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, moleculeSummary{
			Key:             e.Key,
			Name:            e.Name,
			Formula:         e.Formula,
			Description:     e.Description,
			Category:        e.Category,
			AtomCount:       len(e.Atoms),
			MolecularWeight: molecule.MolecularWeight(e.Atoms),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleGetMolecule(w http.ResponseWriter, r *http.Request) {
	e, ok := molecule.Get(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "molecule not found")
		return
	}
	writeJSON(w, http.StatusOK, moleculeDetail{
		Entry:           e,
		AtomString:      e.AtomString(),
		MolecularWeight: molecule.MolecularWeight(e.Atoms),
	})
}

func (s *Service) handleBonds(w http.ResponseWriter, r *http.Request) {
	e, ok := molecule.Get(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "molecule not found")
		return
	}
	threshold := s.threshold()
	if v := r.URL.Query().Get("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			writeError(w, http.StatusBadRequest, "threshold must be a positive number")
			return
		}
		threshold = f
	}
	writeJSON(w, http.StatusOK, bondsResponse{
		Molecule:  e.Key,
		Threshold: threshold,
		Bonds:     bonds.Infer(e.Atoms, threshold),
	})
}

func (s *Service) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	atoms := molecule.ParseMoleculeString(req.MoleculeString)
	records := molecule.CountRecords(req.MoleculeString)
	writeJSON(w, http.StatusOK, parseResponse{
		Atoms:      atoms,
		AtomString: molecule.FormatMoleculeString(atoms),
		Records:    records,
		Skipped:    records - len(atoms),
	})
}

func (s *Service) handleScene(w http.ResponseWriter, r *http.Request) {
	var req sceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var m molecule.Molecule
	switch {
	case len(req.Atoms) > 0:
		m = molecule.Molecule{Name: req.Molecule, Atoms: req.Atoms}
	case req.MoleculeString != "":
		m = molecule.Molecule{Name: req.Molecule, Atoms: molecule.ParseMoleculeString(req.MoleculeString)}
	default:
		e, ok := molecule.Get(req.Molecule)
		if !ok {
			writeError(w, http.StatusNotFound, "molecule not found")
			return
		}
		m = e.Molecule()
	}

	view := interaction.Idle()
	if req.Hovered != nil {
		view.Hovered = *req.Hovered
	}
	threshold := req.BondThreshold
	if threshold <= 0 {
		threshold = s.threshold()
	}
	writeJSON(w, http.StatusOK, scene.Composer{MaxBondDistance: threshold}.Compose(m, req.Overlay, view))
}

func (s *Service) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Molecule == "" && len(req.Atoms) == 0 {
		writeError(w, http.StatusBadRequest, "molecule or atoms is required")
		return
	}
	if req.Method != "" && !simulation.ValidMethod(req.Method) {
		writeError(w, http.StatusBadRequest, "unknown method: "+req.Method)
		return
	}
	o := s.client.Simulate(r.Context(), simulation.Request{
		Molecule: req.Molecule,
		Atoms:    req.Atoms,
		Method:   req.Method,
	})
	writeJSON(w, http.StatusOK, o)
}

func (s *Service) handleMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, simulation.Methods())
}

func (s *Service) handleRender(w http.ResponseWriter, r *http.Request) {
	e, ok := molecule.Get(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "molecule not found")
		return
	}

	q := r.URL.Query()
	width, height := s.opts.Width, s.opts.Height
	if v, err := strconv.Atoi(q.Get("width")); err == nil {
		width = v
	}
	if v, err := strconv.Atoi(q.Get("height")); err == nil {
		height = v
	}
	view := interaction.Idle()
	if v, err := strconv.Atoi(q.Get("hover")); err == nil {
		view.Hovered = v
	}
	var overlay *simulation.Overlay
	if q.Get("quantum") == "true" {
		overlay = simulation.DemoResult(e.Key)
	}

	sc := scene.Composer{MaxBondDistance: s.threshold()}.Compose(e.Molecule(), overlay, view)
	data, err := render.PNG(sc, width, height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Service) handleBackendStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.client.Status())
}

func (s *Service) threshold() float64 {
	if s.opts.BondThreshold > 0 {
		return s.opts.BondThreshold
	}
	return bonds.DefaultMaxDistance
}
