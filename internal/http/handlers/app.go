package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"timelessme/internal/domain"
	"timelessme/internal/infra"
	"timelessme/internal/page"
	"timelessme/internal/wizard"
)

type App struct {
	Sessions *wizard.Store
	Journal  domain.GenerationRepository
	Pages    *page.Renderer
	Logger   infra.Logger

	MaxUploadBytes int64
	SecureCookies  bool

	// Ping checks the database; nil when running without one.
	Ping func(ctx context.Context) error
	Now  func() time.Time
}

func NewApp(sessions *wizard.Store, journal domain.GenerationRepository, logger infra.Logger, cfg *infra.Config) *App {
	return &App{
		Sessions:       sessions,
		Journal:        journal,
		Pages:          &page.Renderer{},
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadBytes,
		SecureCookies:  cfg.AppEnv == "production",
		Now:            time.Now,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
