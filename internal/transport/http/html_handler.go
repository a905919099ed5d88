package http

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
)

// ServeDashboard serves the dashboard page. If webDir contains an
// index.html it is served as a template; otherwise a built-in page with
// links to the API endpoints is rendered so the server is usable without
// a bundled frontend.
func ServeDashboard(webDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		indexPath := filepath.Join(webDir, "index.html")
		if _, err := os.Stat(indexPath); err == nil {
			serveHTML(w, r, indexPath)
			return
		}
		serveBuiltinDashboard(w)
	}
}

// serveHTML serves an HTML file with security headers.
func serveHTML(w http.ResponseWriter, r *http.Request, filePath string) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl, err := template.ParseFiles(filePath)
	if err != nil {
		http.Error(w, "Error loading page", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, nil); err != nil {
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func serveBuiltinDashboard(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(builtinDashboardPage))
}

const builtinDashboardPage = `<!DOCTYPE html>
<html>
<head>
    <title>AI Pulse - Survey Dashboard</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .status { padding: 10px; margin: 10px 0; border-radius: 4px; }
        .info { background-color: #d1ecf1; color: #0c5460; }
        code { background-color: #f4f4f4; padding: 2px 4px; }
    </style>
</head>
<body>
    <h1>AI Pulse - Survey Dashboard</h1>
    <div class="status info">No frontend bundle found; API endpoints below.</div>
    <h2>Endpoints</h2>
    <ul>
        <li><a href="/api/survey/overview">Overview metrics</a></li>
        <li><a href="/api/survey/breakdown">Function breakdown</a></li>
        <li><a href="/api/survey/functions">Functions</a></li>
        <li><a href="/api/survey/histogram">Time histogram</a></li>
        <li><a href="/api/survey/tally/challenges">Challenge tally</a></li>
        <li><a href="/api/survey/status">Load status</a></li>
        <li><a href="/api/health">Health</a></li>
        <li><a href="/metrics">Metrics</a></li>
    </ul>
    <p>POST <code>{"automation_rate": 50}</code> to <code>/api/survey/savings</code> for the projection.</p>
</body>
</html>
`
