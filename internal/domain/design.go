package domain

import "strings"

// DefaultRoomSize is applied when the caller omits the room_size form field.
const DefaultRoomSize = "medium"

// DesignRequest carries one interior design generation request. It lives for
// the duration of a single HTTP call and is never persisted.
type DesignRequest struct {
	RoomType     string
	Style        string
	ColorPalette string
	RoomSize     string
	Image        []byte
}

// Normalize trims the categorical fields and applies the room size default.
func (r *DesignRequest) Normalize() {
	r.RoomType = strings.TrimSpace(r.RoomType)
	r.Style = strings.TrimSpace(r.Style)
	r.ColorPalette = strings.TrimSpace(r.ColorPalette)
	r.RoomSize = strings.TrimSpace(r.RoomSize)
	if r.RoomSize == "" {
		r.RoomSize = DefaultRoomSize
	}
}

// GenerationResult is the caller-facing outcome of one generation call.
type GenerationResult struct {
	ImageBase64 string `json:"image_base64"`
}
