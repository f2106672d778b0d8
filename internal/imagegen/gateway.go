package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/providers/stability"
)

// Fixed generation parameters forwarded to the provider on every request.
// Seed 0 tells the provider to pick a random seed.
const (
	imageStrength  = 0.35
	cfgScale       = 7
	outputWidth    = 768
	outputHeight   = 768
	sampleCount    = 1
	diffusionSteps = 30
	randomSeed     = 0
)

type imageClient interface {
	ImageToImage(ctx context.Context, payload stability.GenerationPayload) ([]stability.Artifact, error)
	Engine() string
}

// Gateway orchestrates one design generation: encode the uploaded photo,
// build the prompt, call the provider, and translate the outcome into the
// service error taxonomy. It holds no per-request state, so a single Gateway
// serves concurrent requests.
type Gateway struct {
	client imageClient
	logger infra.Logger
}

// NewGateway wires a provider client into a request gateway.
func NewGateway(client imageClient, logger infra.Logger) *Gateway {
	return &Gateway{client: client, logger: logger}
}

// Generate runs the full pipeline for a single design request.
func (g *Gateway) Generate(ctx context.Context, req domain.DesignRequest) (*domain.GenerationResult, error) {
	if len(req.Image) == 0 {
		return nil, fmt.Errorf("%w: uploaded image is empty or unreadable", domain.ErrInvalidInput)
	}
	req.Normalize()

	prompt := BuildPrompt(req.RoomType, req.Style, req.ColorPalette, req.RoomSize)
	payload := stability.GenerationPayload{
		InitImage:     base64.StdEncoding.EncodeToString(req.Image),
		InitImageMode: "IMAGE_STRENGTH",
		ImageStrength: imageStrength,
		TextPrompts: []stability.TextPrompt{
			{Text: prompt, Weight: 1},
			{Text: NegativePrompt, Weight: -1},
		},
		CfgScale: cfgScale,
		Height:   outputHeight,
		Width:    outputWidth,
		Samples:  sampleCount,
		Steps:    diffusionSteps,
		Seed:     randomSeed,
	}

	start := time.Now()
	artifacts, err := g.client.ImageToImage(ctx, payload)
	if err != nil {
		return nil, g.translate(err)
	}
	if len(artifacts) == 0 {
		return nil, domain.ErrEmptyResult
	}

	g.logger.Info().
		Str("engine", g.client.Engine()).
		Str("room_type", req.RoomType).
		Str("style", req.Style).
		Dur("elapsed", time.Since(start)).
		Msg("design generated")
	return &domain.GenerationResult{ImageBase64: artifacts[0].Base64}, nil
}

// translate maps provider client failures onto the domain taxonomy. Unknown
// errors pass through and surface as internal errors at the HTTP boundary.
func (g *Gateway) translate(err error) error {
	var statusErr *stability.StatusError
	if errors.As(err, &statusErr) {
		return &domain.UpstreamError{Status: statusErr.StatusCode, Body: statusErr.Body}
	}
	if errors.Is(err, stability.ErrUnreachable) {
		return fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	return err
}
