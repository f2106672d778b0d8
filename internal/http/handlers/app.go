package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/middleware"
)

// designGenerator is the gateway contract the handlers depend on.
type designGenerator interface {
	Generate(ctx context.Context, req domain.DesignRequest) (*domain.GenerationResult, error)
}

// App is the handler container holding process-wide read-only dependencies.
type App struct {
	Config        *infra.Config
	Logger        infra.Logger
	Designs       designGenerator
	CountryLookup middleware.CountryLookup
}

// NewApp wires the handler container.
func NewApp(cfg *infra.Config, logger infra.Logger, designs designGenerator, lookup middleware.CountryLookup) *App {
	return &App{Config: cfg, Logger: logger, Designs: designs, CountryLookup: lookup}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (a *App) error(w http.ResponseWriter, code int, detail string) {
	a.json(w, code, errorResponse{Detail: detail})
}

// writeGenerationError maps gateway failures onto HTTP responses. Upstream
// rejections mirror the provider's status and echo its body; everything else
// collapses to 500 with a descriptive detail.
func (a *App) writeGenerationError(w http.ResponseWriter, err error) {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &upstream):
		a.error(w, upstream.Status, upstream.Body)
	case errors.Is(err, domain.ErrEmptyResult):
		a.error(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, domain.ErrUnreachable):
		a.error(w, http.StatusInternalServerError, err.Error())
	default:
		a.Logger.Error().Err(err).Msg("design generation failed")
		a.error(w, http.StatusInternalServerError, "internal error: "+err.Error())
	}
}
