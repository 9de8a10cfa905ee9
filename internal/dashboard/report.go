package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/molview/internal/simulation"
)

const reportTemplate = `# {{.M.Name}}

{{if not .M.HasResult}}_{{.M.Status}}._

Select a molecule and run simulation to view detailed analysis.
{{else if not .M.Success}}**{{.M.Status}}**

> {{.M.Error}}
{{else}}**{{.M.Status}}**{{if .M.Source}} ({{.M.Source}} data){{end}}

## Key Metrics

| Metric | Value | |
|---|---|---|
{{range .M.Cards}}| {{.Title}} | **{{.Value}}** | {{.Description}} |
{{end}}
## Molecular Properties

{{range .M.Properties}}- **{{.Label}}:** {{.Value}}
{{end}}
## Rwanda District Suitability

| District | Suitability | Primary Crop | Est. Yield Boost |
|---|---|---|---|
{{range .M.Districts}}| {{.Name}} | {{.Suitability}} | {{.Crop}} | +{{.YieldBoost}}% |
{{end}}
## Estimated Impact

- Farmers reached: {{.M.Impact.FarmersReached}}
- Yield increase: +{{.M.Impact.YieldIncrease}}%
- Cost reduction: {{.M.Impact.CostReduction}}%
- Environmental benefit: {{.M.Impact.EnvironmentalBenefit}}/100

## Implementation Roadmap

{{range $i, $s := .M.Roadmap}}{{inc $i}}. {{if eq $s.State "completed"}}~~{{$s.Title}}~~{{else if eq $s.State "active"}}**{{$s.Title}}**{{else}}{{$s.Title}}{{end}}: {{$s.Detail}}
{{end}}
## Technical Simulation Details

{{range .M.Technical}}- {{.Label}}: {{.Value}}
{{end}}
### Raw Result

` + "```json" + `
{{.Raw}}
` + "```" + `
{{end}}`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(reportTemplate))

// Markdown renders the metrics as a Markdown report.
func Markdown(m Metrics, o *simulation.Overlay) (string, error) {
	raw := "{}"
	if o != nil {
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding result: %w", err)
		}
		raw = string(data)
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, struct {
		M   Metrics
		Raw string
	}{m, raw}); err != nil {
		return "", fmt.Errorf("executing report template: %w", err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// HTML converts a Markdown report to an HTML fragment.
func (d *Dashboard) HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := d.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
