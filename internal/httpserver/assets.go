package httpserver

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*.css static/*.js
var staticFiles embed.FS

// staticFS serves the page script and stylesheet under /static.
func staticFS() http.FileSystem {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
