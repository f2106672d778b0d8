package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// NewRouter assembles the chi router with the service middleware stack.
func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(app.Config.CORSAllowedOrigins))
	r.Use(middleware.I18N(app.Config.DefaultLocale, app.CountryLookup))

	r.Get("/", app.Welcome)
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/vocabulary", app.Vocabulary)
	r.Post("/generate_design/", app.GenerateDesign)

	return r
}
