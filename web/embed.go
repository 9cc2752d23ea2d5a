// Package web embeds the HTML templates and static assets of the chat UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates returns the template files rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic("web: failed to create templates sub filesystem: " + err.Error())
	}
	return sub
}

// StaticHandler serves the embedded static/ directory. Mount it under a
// prefix with http.StripPrefix.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: failed to create static sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(sub))
}
