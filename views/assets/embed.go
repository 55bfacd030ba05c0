package assets

import "embed"

// FS holds the site's static files, served under /assets/
//
//go:embed app.css app.js
var FS embed.FS
