package handlers

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"learnhub/views/assets"
)

// StaticHandler serves the embedded files of views/assets under /assets/
func StaticHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/assets/")
	if name == "" || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	if _, err := fs.Stat(assets.FS, name); err != nil {
		http.NotFound(w, r)
		return
	}

	// Set proper MIME types for the files we ship
	switch strings.ToLower(path.Ext(name)) {
	case ".css":
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	case ".js":
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	case ".svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")

	http.ServeFileFS(w, r, assets.FS, name)
}
