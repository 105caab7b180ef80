package handlers

import (
	"net/http"

	"timelessme/internal/wizard"
)

// SessionCookie carries the wizard session id.
const SessionCookie = "timeless_session"

// session returns the caller's controller, starting a new session and
// setting the cookie when the request carries none or an expired one.
func (a *App) session(w http.ResponseWriter, r *http.Request) *wizard.Controller {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	ctrl, created := a.Sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    ctrl.ID(),
			Path:     "/",
			HttpOnly: true,
			Secure:   a.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return ctrl
}
