// Package views holds the embedded page templates and the configured
// rendering engine.
package views

import (
	"embed"
	"net/http"
	"time"

	"todoweb/internal/duedate"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html layouts/*.html
var files embed.FS

// Layout is the shared page frame every template renders inside.
const Layout = "layouts/main"

// Engine builds the HTML rendering engine over the embedded templates.
func Engine() *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("daysleft", func(due time.Time) string {
		return duedate.Label(due, time.Now())
	})
	engine.AddFunc("dateonly", func(t time.Time) string {
		return t.Format("2006-01-02")
	})
	return engine
}
