package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Task: "Rendering frames", Out: &buf}
	r.Start(2)
	r.Update(1, "frame 1")
	r.Update(2, "frame 2")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Rendering frames: 2 total", "[1/2] frame 1", "[2/2] frame 2", "Rendering frames: complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewReporterUnderCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*CIReporter); !ok {
		t.Error("NewReporter under CI did not return a CIReporter")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	r, ok := NewReporter("Rendering frames").(*TerminalReporter)
	if !ok {
		t.Fatal("NewReporter did not return a TerminalReporter")
	}
	if r.Task != "Rendering frames" {
		t.Errorf("Task = %q, want %q", r.Task, "Rendering frames")
	}
}
