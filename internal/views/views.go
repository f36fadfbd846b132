package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var files embed.FS

// Engine returns the Fiber view engine backed by the embedded templates, so
// rendering works the same from any working directory, tests included.
func Engine() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
