package http

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	visitorCookie = "ocean_visitor"
	visitorMaxAge = 365 * 24 * 60 * 60
)

// visitorID returns the caller's visitor ID, issuing a new cookie when the
// request carries none or an invalid one.
func visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(visitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   visitorMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
