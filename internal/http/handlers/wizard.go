package handlers

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"timelessme/internal/domain"
	"timelessme/internal/imagegen"
	"timelessme/internal/middleware"
	"timelessme/internal/page"
	"timelessme/internal/wizard"
)

const photoField = "photo"

type stateResponse struct {
	State          string `json:"state"`
	Decade         string `json:"decade,omitempty"`
	ErrorKind      string `json:"error_kind,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
	SourceURL      string `json:"source_url,omitempty"`
	GeneratedImage string `json:"generated_image,omitempty"`
	DownloadURL    string `json:"download_url,omitempty"`
	LoaderMessage  string `json:"loader_message,omitempty"`
}

func (a *App) stateResponse(r *http.Request, snap wizard.Snapshot) stateResponse {
	view := page.NewView(snap, middleware.LocaleFromContext(r.Context()), a.now())
	resp := stateResponse{
		State:          snap.State.String(),
		Decade:         snap.Decade.String(),
		ErrorKind:      string(snap.ErrorKind),
		SourceURL:      view.SourceURL,
		GeneratedImage: string(view.GeneratedURI),
		DownloadURL:    view.DownloadURL,
	}
	if view.ErrorMessage != "" {
		resp.ErrorMessage = view.T(view.ErrorMessage)
	}
	if view.LoaderMessage != "" {
		resp.LoaderMessage = view.T(view.LoaderMessage)
	}
	return resp
}

// Index renders the wizard page for the caller's session.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	ctrl := a.session(w, r)
	view := page.NewView(ctrl.Snapshot(), middleware.LocaleFromContext(r.Context()), a.now())
	body, err := a.Pages.Render(view)
	if err != nil {
		a.Logger.Error().Err(err).Msg("render page")
		a.error(w, http.StatusInternalServerError, "internal", "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// State returns the caller's snapshot as JSON.
func (a *App) State(w http.ResponseWriter, r *http.Request) {
	ctrl := a.session(w, r)
	w.Header().Set("Cache-Control", "no-store")
	a.json(w, http.StatusOK, a.stateResponse(r, ctrl.Snapshot()))
}

// Photo accepts the multipart upload of a new source photo.
func (a *App) Photo(w http.ResponseWriter, r *http.Request) {
	ctrl := a.session(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	file, header, err := r.FormFile(photoField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "photo exceeds upload limit")
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read photo")
		return
	}

	src := imagegen.SourceImage{
		Data:     data,
		MIMEType: strings.TrimSpace(header.Header.Get("Content-Type")),
		Name:     header.Filename,
	}
	if imagegen.IsImageMIME(src.MIMEType) {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			src.Width, src.Height = cfg.Width, cfg.Height
		} else {
			a.Logger.Debug().Err(err).Str("mime", src.MIMEType).Msg("photo dimensions unavailable")
		}
	}

	snap, err := ctrl.ChooseFile(src)
	a.respond(w, r, snap, err)
}

// Decade starts a generation for the submitted decade.
func (a *App) Decade(w http.ResponseWriter, r *http.Request) {
	ctrl := a.session(w, r)
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form")
		return
	}
	decade, err := domain.ParseDecade(r.PostFormValue("decade"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown decade")
		return
	}
	snap, err := ctrl.ChooseDecade(decade)
	a.respond(w, r, snap, err)
}

// Restart returns the caller's wizard to the upload step.
func (a *App) Restart(w http.ResponseWriter, r *http.Request) {
	ctrl := a.session(w, r)
	snap, err := ctrl.Restart()
	a.respond(w, r, snap, err)
}

// respond answers a wizard event: JSON clients get the new state, form
// posts are redirected back to the page.
func (a *App) respond(w http.ResponseWriter, r *http.Request, snap wizard.Snapshot, err error) {
	switch {
	case err == nil:
	case errors.Is(err, wizard.ErrInvalidTransition):
		a.error(w, http.StatusConflict, "invalid_transition", err.Error())
		return
	case errors.Is(err, domain.ErrUnknownDecade):
		a.error(w, http.StatusBadRequest, "bad_request", "unknown decade")
		return
	case errors.Is(err, wizard.ErrClosed):
		a.error(w, http.StatusConflict, "session_closed", "session expired, reload the page")
		return
	default:
		a.Logger.Error().Err(err).Msg("wizard event failed")
		a.error(w, http.StatusInternalServerError, "internal", "unexpected error")
		return
	}

	if wantsJSON(r) {
		a.json(w, http.StatusOK, a.stateResponse(r, snap))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
