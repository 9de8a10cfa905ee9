package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

func setupRouter(d *Dashboard) chi.Router {
	r := chi.NewRouter()
	d.RegisterRoutes(r)
	return r
}

func TestFormatEnergy(t *testing.T) {
	if got := FormatEnergy(nil); got != "N/A" {
		t.Errorf("FormatEnergy(nil) = %q, want N/A", got)
	}
	if got := FormatEnergy(simulation.Float(-76.2834)); got != "-76.283 Ha" {
		t.Errorf("FormatEnergy = %q, want -76.283 Ha", got)
	}
	if got := FormatEnergy(simulation.Float(0)); got != "0.000 Ha" {
		t.Errorf("FormatEnergy(0) = %q, want 0.000 Ha", got)
	}
}

func TestFormatDipole(t *testing.T) {
	if got := FormatDipole(nil); got != "N/A" {
		t.Errorf("FormatDipole(nil) = %q, want N/A", got)
	}
	if got := FormatDipole(&[3]float64{3, 4, 0}); got != "5.000 D" {
		t.Errorf("FormatDipole = %q, want 5.000 D", got)
	}
}

func TestDefaults(t *testing.T) {
	if got := ActivityScore(nil); got != DefaultActivityScore {
		t.Errorf("ActivityScore(nil) = %v", got)
	}
	if got := Bioavailability(&simulation.Overlay{}); got != DefaultBioavailability {
		t.Errorf("Bioavailability = %q", got)
	}
	o := &simulation.Overlay{AgriculturalActivity: &simulation.AgriculturalActivity{
		PesticideActivityScore:    simulation.Float(0.85),
		BioavailabilityPrediction: "high",
	}}
	if got := ActivityScore(o); got != 0.85 {
		t.Errorf("ActivityScore = %v, want 0.85", got)
	}
	if got := Bioavailability(o); got != "high" {
		t.Errorf("Bioavailability = %q, want high", got)
	}
}

func TestComputeCards(t *testing.T) {
	o := &simulation.Overlay{
		Success:         true,
		QuantumEnergy:   simulation.Float(-76.28),
		ClassicalEnergy: simulation.Float(-75.98),
		AgriculturalActivity: &simulation.AgriculturalActivity{
			PesticideActivityScore: simulation.Float(0.85),
		},
	}
	m := Compute(molecule.GetOrDefault("pesticide"), o)

	want := map[string]string{
		"Molecular Energy":            "-75.980 Ha",
		"Agricultural Activity":       "85.0%",
		"Estimated Farmers Benefited": "85,000",
		"Yield Improvement":           "+25%",
	}
	if len(m.Cards) != len(want) {
		t.Fatalf("cards = %d, want %d", len(m.Cards), len(want))
	}
	for _, c := range m.Cards {
		if c.Value != want[c.Title] {
			t.Errorf("%s = %q, want %q", c.Title, c.Value, want[c.Title])
		}
	}
	if m.Status != "Simulation Complete" {
		t.Errorf("Status = %q", m.Status)
	}
	if len(m.Districts) != 4 {
		t.Errorf("districts = %d, want 4", len(m.Districts))
	}
	for _, d := range m.Districts {
		if d.YieldBoost < 10 || d.YieldBoost > 29 {
			t.Errorf("%s yield boost = %d, want 10..29", d.Name, d.YieldBoost)
		}
	}
}

func TestComputeQuantumEnergyFallback(t *testing.T) {
	o := &simulation.Overlay{Success: true, QuantumEnergy: simulation.Float(-1.5)}
	m := Compute(molecule.GetOrDefault("water"), o)
	if m.Cards[0].Value != "-1.500 Ha" {
		t.Errorf("energy = %q, want -1.500 Ha", m.Cards[0].Value)
	}
	if m.Cards[1].Value != "50.0%" {
		t.Errorf("activity = %q, want 50.0%%", m.Cards[1].Value)
	}
	if m.Properties[0].Value != "0.000 D" {
		t.Errorf("dipole = %q, want 0.000 D", m.Properties[0].Value)
	}
	if m.Properties[1].Value != "MEDIUM" {
		t.Errorf("bioavailability = %q, want MEDIUM", m.Properties[1].Value)
	}
}

func TestComputePlaceholderAndFailure(t *testing.T) {
	m := Compute(molecule.GetOrDefault("water"), nil)
	if m.HasResult || len(m.Cards) != 0 {
		t.Errorf("placeholder = %+v", m)
	}

	m = Compute(molecule.GetOrDefault("water"), &simulation.Overlay{Success: false})
	if m.Status != "Simulation Failed" || m.Error != "Unknown error occurred" {
		t.Errorf("failure = %q / %q", m.Status, m.Error)
	}
	if m.Impact != (Impact{}) {
		t.Errorf("impact on failure = %+v, want zero", m.Impact)
	}
}

func TestEstimateImpact(t *testing.T) {
	score := &simulation.AgriculturalActivity{PesticideActivityScore: simulation.Float(0.5)}
	ok := &simulation.Overlay{Success: true, AgriculturalActivity: score}

	tests := []struct {
		key  string
		want Impact
	}{
		{"pesticide", Impact{25000, 12, 15, 80}},
		{"nutrient", Impact{37500, 17, 10, 60}},
		{"water", Impact{12500, 7, 7, 40}},
		{"caffeine", Impact{12500, 7, 7, 40}},
	}
	for _, tt := range tests {
		if got := EstimateImpact(molecule.GetOrDefault(tt.key), ok); got != tt.want {
			t.Errorf("EstimateImpact(%s) = %+v, want %+v", tt.key, got, tt.want)
		}
	}

	if got := EstimateImpact(molecule.GetOrDefault("pesticide"), nil); got != (Impact{}) {
		t.Errorf("EstimateImpact(nil) = %+v, want zero", got)
	}
}

func TestThousands(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 85000: "85,000", 1234567: "1,234,567", -4200: "-4,200"}
	for n, want := range tests {
		if got := thousands(n); got != want {
			t.Errorf("thousands(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestMarkdownReport(t *testing.T) {
	o := simulation.DemoResult("water")
	md, err := Markdown(Compute(molecule.GetOrDefault("water"), o), o)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	for _, want := range []string{"# Water", "## Key Metrics", "| Gasabo |", "```json", "quantum_energy"} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}

	md, err = Markdown(Compute(molecule.GetOrDefault("water"), nil), nil)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if strings.Contains(md, "## Key Metrics") {
		t.Error("placeholder report contains metrics")
	}
}

func TestReportEndpoint(t *testing.T) {
	r := setupRouter(New(nil, "water"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard?molecule=nutrient", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"<table>", "Iron Chelate Complex", `id="key-metrics"`, "Simulation Complete"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupRouter(New(nil, "water"))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/metrics?molecule=pesticide", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var m Metrics
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("decoding metrics: %v", err)
	}
	if m.Molecule != "pesticide" || !m.Success {
		t.Errorf("metrics = %+v", m)
	}
	if m.Source != simulation.SourceDemo {
		t.Errorf("source = %q, want demo", m.Source)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/dashboard/metrics?simulate=false", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	json.NewDecoder(w.Body).Decode(&m)
	if m.HasResult {
		t.Error("simulate=false returned a result")
	}
}

func TestMetricsForOverlay(t *testing.T) {
	r := setupRouter(New(nil, "water"))

	body := `{"molecule": "nutrient", "overlay": {"success": true, "quantum_energy": -5}}`
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/metrics", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var m Metrics
	json.NewDecoder(w.Body).Decode(&m)
	if m.Impact.FarmersReached != 37500 {
		t.Errorf("farmers reached = %d, want 37500", m.Impact.FarmersReached)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/dashboard/metrics", strings.NewReader("{"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestServeIndex(t *testing.T) {
	r := setupRouter(New(nil, "water"))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "/ws/viewer") {
		t.Error("index does not open a viewer session")
	}
}
