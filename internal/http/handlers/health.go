package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if a.Ping != nil {
		if err := a.Ping(r.Context()); err != nil {
			a.Logger.Warn().Err(err).Msg("database ping failed")
			a.json(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unavailable"})
			return
		}
		a.json(w, http.StatusOK, map[string]string{"status": "ok", "database": "ok"})
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
