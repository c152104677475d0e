package server

import (
	"fmt"
	"html"
)

// errorPage renders the self-contained card shown inside the embedding frame
// when a page cannot be transformed. Served as 200 so the frame stays
// stable; the failure is the content, not the status.
func errorPage(message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>EquiNet — Could Not Load</title>
  <style>
    body { font-family: -apple-system, sans-serif; display:flex; align-items:center; justify-content:center; min-height:100vh; margin:0; background:#f8fafc; }
    .card { max-width:480px; padding:3rem 2rem; text-align:center; background:white; border-radius:1.5rem; box-shadow:0 4px 24px rgba(0,0,0,0.08); border:1px solid #e2e8f0; }
    .icon { font-size:3rem; margin-bottom:1rem; }
    h2 { font-size:1.25rem; margin:0 0 0.75rem; color:#0f172a; }
    p { font-size:0.95rem; line-height:1.6; color:#64748b; margin:0; }
  </style>
</head>
<body>
  <div class="card">
    <div class="icon">🔒</div>
    <h2>Page Could Not Be Loaded</h2>
    <p>%s</p>
  </div>
</body>
</html>`, html.EscapeString(message))
}
