package simulation

// Method describes a computation method the backend accepts.
type Method struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Advantages  []string `json:"advantages"`
	Limitations []string `json:"limitations"`
}

var methods = []Method{
	{
		ID:          "vqe",
		Name:        "Quantum VQE",
		Description: "Variational Quantum Eigensolver - Most accurate for small molecules",
		Advantages:  []string{"High precision", "Quantum advantage", "Future-ready"},
		Limitations: []string{"Computationally intensive", "Limited to small systems"},
	},
	{
		ID:          "hf",
		Name:        "Classical HF",
		Description: "Hartree-Fock Method - Fast and reliable baseline",
		Advantages:  []string{"Fast computation", "Well established", "Good for comparison"},
		Limitations: []string{"Less accurate for correlated systems"},
	},
	{
		ID:          "dft",
		Name:        "DFT",
		Description: "Density Functional Theory - Balance of speed and accuracy",
		Advantages:  []string{"Good accuracy", "Reasonable speed", "Handles larger systems"},
		Limitations: []string{"Approximate exchange-correlation"},
	},
}

// Methods returns the supported methods in display order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// ValidMethod reports whether id names a supported method.
func ValidMethod(id string) bool {
	for _, m := range methods {
		if m.ID == id {
			return true
		}
	}
	return false
}
