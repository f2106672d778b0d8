package handlers

import (
	"net/http"

	"server/internal/middleware"
)

// Welcome handles GET /: a static info endpoint so humans poking the root URL
// get a pointer to the real API.
func (a *App) Welcome(w http.ResponseWriter, r *http.Request) {
	message := "Welcome to the Interior Design Generator API. POST a room photo to /generate_design/ to get started."
	if middleware.LocaleFromContext(r.Context()) == "id" {
		message = "Selamat datang di Interior Design Generator API. Kirim foto ruangan ke /generate_design/ untuk memulai."
	}
	a.json(w, http.StatusOK, map[string]string{"message": message})
}
