package dashboard

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// Defaults applied when the backend omits agricultural predictions.
const (
	DefaultActivityScore   = 0.5
	DefaultBioavailability = "medium"
	NotAvailable           = "N/A"
)

// Card is one headline metric.
type Card struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Property is a labelled value.
type Property struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// District is a regional suitability row.
type District struct {
	Name        string `json:"name"`
	Suitability string `json:"suitability"`
	Crop        string `json:"crop"`
	YieldBoost  int    `json:"yield_boost"`
}

// Step is one stage of the implementation roadmap.
type Step struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	State  string `json:"state"` // completed, active, pending
}

// Metrics is everything the dashboard shows for one result.
type Metrics struct {
	Molecule   string            `json:"molecule"`
	Name       string            `json:"name"`
	HasResult  bool              `json:"has_result"`
	Success    bool              `json:"success"`
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
	Source     simulation.Source `json:"source,omitempty"`
	Cards      []Card            `json:"cards,omitempty"`
	Properties []Property        `json:"properties,omitempty"`
	Districts  []District        `json:"districts,omitempty"`
	Roadmap    []Step            `json:"roadmap,omitempty"`
	Technical  []Property        `json:"technical,omitempty"`
	Impact     Impact            `json:"impact"`
}

// FormatEnergy formats an energy in Hartree.
func FormatEnergy(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.3f Ha", *v)
}

// DipoleMagnitude returns the length of a dipole vector.
func DipoleMagnitude(d [3]float64) float64 {
	return math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
}

// FormatDipole formats the magnitude of a dipole vector in Debye.
func FormatDipole(d *[3]float64) string {
	if d == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.3f D", DipoleMagnitude(*d))
}

// ActivityScore returns the pesticide activity score, or the default when
// the result carries none.
func ActivityScore(o *simulation.Overlay) float64 {
	if o == nil || o.AgriculturalActivity == nil || o.AgriculturalActivity.PesticideActivityScore == nil {
		return DefaultActivityScore
	}
	return *o.AgriculturalActivity.PesticideActivityScore
}

// Bioavailability returns the predicted bioavailability or the default.
func Bioavailability(o *simulation.Overlay) string {
	if o == nil || o.AgriculturalActivity == nil || o.AgriculturalActivity.BioavailabilityPrediction == "" {
		return DefaultBioavailability
	}
	return o.AgriculturalActivity.BioavailabilityPrediction
}

// headlineEnergy prefers the classical energy.
func headlineEnergy(o *simulation.Overlay) *float64 {
	if o.ClassicalEnergy != nil {
		return o.ClassicalEnergy
	}
	return o.QuantumEnergy
}

var districts = []District{
	{Name: "Gasabo", Suitability: "High", Crop: "Maize"},
	{Name: "Nyarugenge", Suitability: "Medium", Crop: "Beans"},
	{Name: "Kicukiro", Suitability: "High", Crop: "Vegetables"},
	{Name: "Huye", Suitability: "Medium", Crop: "Coffee"},
}

var roadmap = []Step{
	{Title: "Molecular Design Complete", Detail: "Quantum simulation validated molecular structure", State: "completed"},
	{Title: "Laboratory Testing", Detail: "Synthesize and test efficacy in controlled environment", State: "active"},
	{Title: "Field Trials", Detail: "Partner with Rwanda Agriculture Board for pilot studies", State: "pending"},
	{Title: "Farmer Training & Deployment", Detail: "Scale across Rwanda's agricultural regions", State: "pending"},
}

// Compute builds the dashboard for entry and its simulation result. A nil
// result yields the placeholder state.
func Compute(entry molecule.Entry, o *simulation.Overlay) Metrics {
	m := Metrics{
		Molecule: entry.Key,
		Name:     entry.Name,
		Status:   "Run a simulation to see results",
		Impact:   EstimateImpact(entry, o),
	}
	if o == nil {
		return m
	}

	m.HasResult = true
	m.Success = o.Success
	m.Source = o.Source
	if !o.Success {
		m.Status = "Simulation Failed"
		m.Error = o.Error
		if m.Error == "" {
			m.Error = "Unknown error occurred"
		}
		return m
	}
	m.Status = "Simulation Complete"

	score := ActivityScore(o)
	m.Cards = []Card{
		{Title: "Molecular Energy", Value: FormatEnergy(headlineEnergy(o)), Description: "Quantum-calculated binding energy", Color: "blue"},
		{Title: "Agricultural Activity", Value: fmt.Sprintf("%.1f%%", score*100), Description: "Predicted effectiveness for crop protection", Color: "green"},
		{Title: "Estimated Farmers Benefited", Value: thousands(int(math.Floor(score * 100000))), Description: "Potential reach across Rwanda", Color: "orange"},
		{Title: "Yield Improvement", Value: fmt.Sprintf("+%d%%", int(math.Floor(score*30))), Description: "Expected crop yield increase", Color: "purple"},
	}

	dipole := o.DipoleMoment
	if dipole == nil {
		dipole = &[3]float64{}
	}
	m.Properties = []Property{
		{Label: "Dipole Moment", Value: FormatDipole(dipole)},
		{Label: "Bioavailability", Value: strings.ToUpper(Bioavailability(o))},
		{Label: "Environmental Safety", Value: "HIGH"},
		{Label: "Cost Estimate", Value: "$2.50/kg"},
		{Label: "Molecular Weight", Value: fmt.Sprintf("%.3f g/mol", molecule.MolecularWeight(entry.Atoms))},
	}

	m.Districts = make([]District, len(districts))
	for i, d := range districts {
		d.YieldBoost = yieldBoost(entry.Key, d.Name)
		m.Districts[i] = d
	}
	m.Roadmap = append([]Step(nil), roadmap...)

	method := o.MethodUsed
	if method == "" {
		method = "VQE"
	}
	ms := o.ComputationTimeMS
	if ms == 0 {
		ms = 150
	}
	advantage := "Classical"
	if o.QuantumActive() {
		advantage = "Active"
	}
	m.Technical = []Property{
		{Label: "Method", Value: strings.ToUpper(method)},
		{Label: "Computation Time", Value: strconv.FormatFloat(ms, 'f', -1, 64) + "ms"},
		{Label: "Quantum Advantage", Value: advantage},
		{Label: "Convergence", Value: "Achieved"},
	}
	return m
}

// yieldBoost is a stable 10..29 per molecule and district.
func yieldBoost(key, district string) int {
	h := fnv.New32a()
	h.Write([]byte(key + "/" + district))
	return 10 + int(h.Sum32()%20)
}

// thousands formats n with comma separators.
func thousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
