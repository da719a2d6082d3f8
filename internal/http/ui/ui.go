// Package ui serves the single-page student management UI.
//
// The page is one embedded HTML template. It talks to the API with
// fetch(), keeps the collection as its only view state and refetches the
// whole list after every create, update or delete.
package ui

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Title       string
	StudentsURL string
}

// Handler renders the page at "/". Any other path is a 404 so the UI does
// not swallow mistyped API URLs.
func Handler(apiPrefix string) http.Handler {
	var buf bytes.Buffer
	if err := page.Execute(&buf, pageData{
		Title:       "Student Management",
		StudentsURL: apiPrefix + "/students",
	}); err != nil {
		panic("ui.Handler: render: " + err.Error())
	}
	body := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			w.Write(body)
		}
	})
}
