package dashboard

import (
	_ "embed"
	"html/template"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// ServeIndex serves the embedded viewer page.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} - Rwanda Agricultural Impact Dashboard</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; color: #1f2933; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #d9e2ec; padding: .4rem .6rem; text-align: left; }
    nav a { margin-right: 1rem; }
    pre { padding: 1rem; overflow-x: auto; }
  </style>
</head>
<body>
  <nav>{{range .Molecules}}<a href="?molecule={{.}}">{{.}}</a>{{end}}<a href="/">viewer</a></nav>
  <main>
{{.Body}}
  </main>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Title     string
	Molecules []string
	Body      template.HTML
}
