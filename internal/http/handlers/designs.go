package handlers

import (
	"io"
	"net/http"
	"strings"

	"server/internal/domain"
)

// maxUploadBytes caps how much of the multipart body is buffered in memory.
const maxUploadBytes = 20 << 20

// GenerateDesign handles POST /generate_design/: multipart form with an
// `image` file plus categorical style fields. On success it responds with the
// generated image, base64 encoded.
func (a *App) GenerateDesign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "failed to read uploaded image")
		return
	}

	req := domain.DesignRequest{
		RoomType:     r.FormValue("room_type"),
		Style:        r.FormValue("style"),
		ColorPalette: r.FormValue("color_palette"),
		RoomSize:     r.FormValue("room_size"),
		Image:        image,
	}
	if missing := missingFields(req); missing != "" {
		a.error(w, http.StatusBadRequest, missing+" is required")
		return
	}

	result, err := a.Designs.Generate(r.Context(), req)
	if err != nil {
		a.writeGenerationError(w, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

func missingFields(req domain.DesignRequest) string {
	switch {
	case strings.TrimSpace(req.RoomType) == "":
		return "room_type"
	case strings.TrimSpace(req.Style) == "":
		return "style"
	case strings.TrimSpace(req.ColorPalette) == "":
		return "color_palette"
	}
	return ""
}
