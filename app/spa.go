package app

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// spaHandler serves files from staticPath and falls back to indexPath for
// anything that is not a regular file, so client-side routes resolve.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	assetPath := filepath.Join(h.staticPath, filepath.FromSlash(path.Clean("/"+r.URL.Path)))

	info, err := os.Stat(assetPath)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))

		return
	}

	http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
}
