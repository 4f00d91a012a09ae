package handlers

import (
	"flag"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/julienschmidt/httprouter"
)

var webBuild = flag.String("web_build", "", "`build` folder for web app")

func createWebApp(r Router) {
	if *webBuild == "" {
		return
	}
	err := fs.WalkDir(os.DirFS(*webBuild), ".",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			urlPath := "/" + filepath.ToSlash(path)
			filePath := filepath.Join(*webBuild, path)

			r.GET(urlPath, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				http.ServeFile(w, r, filePath)
			})
			return nil
		},
	)
	if err != nil {
		panic(err)
	}
	r.GET("/", serveIndex)
}

// serveIndex serves the web app's entry point, or a 404 when there's no web
// build.
func serveIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if *webBuild == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(*webBuild, "index.html"))
}
