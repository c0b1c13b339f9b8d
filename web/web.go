package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/vmsuarez/usermap/pkg/config"
	"github.com/vmsuarez/usermap/pkg/logger"
)

//go:embed templates/index.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	MapsBrowserKey string
}

// Handler serves the embedded browser page and its static assets. The
// Maps browser key is injected into the page so the client can load the
// map library; an empty key leaves the map surface disabled.
func Handler(cfg *config.Config, logg *logger.Logger) http.Handler {
	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{}
		if cfg != nil {
			data.MapsBrowserKey = cfg.Maps.BrowserKey
		}
		if err := indexTemplate.Execute(w, data); err != nil && logg != nil {
			logg.Error(r.Context(), "web.render_failed", err)
		}
	})
	return mux
}
