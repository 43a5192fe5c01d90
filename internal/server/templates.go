package server

// pageTemplate renders NVD News. The results-only variant drops the header
// and filter form so it fits a widget.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>NVD News</title>
  <style>
    :root { --bg: #0d1117; --fg: #e6edf3; --muted: #8a8f98; --err: #ff3131; }
    [data-theme="light"] { --bg: #ffffff; --fg: #1b1f27; --muted: #5b6270; --err: #b3001b; }
    body { background: var(--bg); color: var(--fg); font-family: sans-serif; margin: 1rem; }
    .muted { color: var(--muted); }
    .banner { color: var(--err); font-weight: bold; }
    .sev { font-weight: bold; margin-right: .5rem; }
    ul.vulns { list-style: none; padding: 0; }
    ul.vulns li { margin-bottom: .75rem; }
  </style>
</head>
<body>
{{- if not .ResultsOnly}}
  <h1>NVD News</h1>
  <form method="get">
    <fieldset>
      <legend>Severity</legend>
      {{- range .Severities}}
      <label><input type="checkbox" name="severity" value="{{.Value}}"{{if .Checked}} checked{{end}}> {{.Value}}</label>
      {{- end}}
    </fieldset>
    <fieldset>
      <legend>Source</legend>
      {{- range .Sources}}
      <label><input type="checkbox" name="source" value="{{.Value}}"{{if .Checked}} checked{{end}}> {{.Value}}</label>
      {{- end}}
    </fieldset>
    <button type="submit">Apply</button>
  </form>
{{- end}}
{{- if .Error}}
  <p class="banner">{{if .Partial}}Partial results: {{else}}Error: {{end}}{{.Error}}</p>
{{- end}}
  <ul class="vulns">
  {{- range .Vulns}}
    <li>
      <span class="sev">{{.Severity}}</span>
      {{if .URL}}<a href="{{.URL}}">{{.ID}}</a>{{else}}{{.ID}}{{end}}
      <span class="muted">{{.Source}} {{.Published.Format "2006-01-02"}}</span>
      <div>{{.Description}}</div>
    </li>
  {{- else}}
    {{- if not .Error}}
    <li class="muted">No vulnerabilities found.</li>
    {{- end}}
  {{- end}}
  </ul>
  <script>
    window.addEventListener("message", function (e) {
      var d = e.data || {};
      if (d.action === "themeChanged" && (d.theme === "dark" || d.theme === "light")) {
        document.documentElement.setAttribute("data-theme", d.theme);
      }
    });
  </script>
</body>
</html>`
