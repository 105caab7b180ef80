package handlers

import (
	"net/http"

	"timelessme/internal/domain"
)

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	counts, err := a.Journal.Summary(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("load generation summary")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	if counts == nil {
		counts = []domain.GenerationCount{}
	}
	a.json(w, http.StatusOK, map[string]any{
		"generations": counts,
		"sessions":    a.Sessions.Count(),
		"live_images": a.Sessions.Refs().Live(),
	})
}
