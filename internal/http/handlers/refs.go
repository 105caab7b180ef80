package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"timelessme/internal/wizard"
)

// DownloadFilename is the fixed name of the downloaded result.
const DownloadFilename = "timeless-me.png"

// RefImage streams the image behind a display reference.
func (a *App) RefImage(w http.ResponseWriter, r *http.Request) {
	blob, ok := a.openRef(w, r)
	if !ok {
		return
	}
	a.writeBlob(w, blob)
}

// RefDownload streams the image as an attachment.
func (a *App) RefDownload(w http.ResponseWriter, r *http.Request) {
	blob, ok := a.openRef(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadFilename+`"`)
	a.writeBlob(w, blob)
}

func (a *App) openRef(w http.ResponseWriter, r *http.Request) (wizard.Blob, bool) {
	blob, ok := a.Sessions.Refs().Open(chi.URLParam(r, "id"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "image not found")
		return wizard.Blob{}, false
	}
	return blob, true
}

func (a *App) writeBlob(w http.ResponseWriter, blob wizard.Blob) {
	w.Header().Set("Content-Type", blob.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob.Data)
}
