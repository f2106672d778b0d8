package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
)

type stubGenerator struct {
	req    *domain.DesignRequest
	result *domain.GenerationResult
	err    error
	calls  int
}

func (s *stubGenerator) Generate(ctx context.Context, req domain.DesignRequest) (*domain.GenerationResult, error) {
	s.calls++
	s.req = &req
	return s.result, s.err
}

func newTestApp(gen *stubGenerator) *App {
	cfg := &infra.Config{AppEnv: "test", DefaultLocale: "en"}
	return NewApp(cfg, zerolog.New(io.Discard), gen, nil)
}

type formField struct {
	name  string
	value string
}

func designForm(t *testing.T, image []byte, fields ...formField) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if image != nil {
		part, err := writer.CreateFormFile("image", "room.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("write image part: %v", err)
		}
	}
	for _, f := range fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			t.Fatalf("write field %s: %v", f.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func defaultFields() []formField {
	return []formField{
		{"room_type", "living room"},
		{"style", "japandi"},
		{"color_palette", "natural and earthy tones"},
	}
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body)
	}
	return body.Detail
}

func TestGenerateDesignSuccess(t *testing.T) {
	gen := &stubGenerator{result: &domain.GenerationResult{ImageBase64: "abc123"}}
	app := newTestApp(gen)

	body, contentType := designForm(t, []byte{0x89, 'P', 'N', 'G'}, defaultFields()...)
	req := httptest.NewRequest(http.MethodPost, "/generate_design/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.GenerateDesign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["image_base64"] != "abc123" {
		t.Fatalf("image_base64 = %q, want abc123", resp["image_base64"])
	}
	if gen.req == nil || gen.req.RoomType != "living room" || gen.req.Style != "japandi" {
		t.Fatalf("generator request not forwarded: %+v", gen.req)
	}
	if len(gen.req.Image) != 4 {
		t.Fatalf("image bytes not forwarded: %d", len(gen.req.Image))
	}
}

func TestGenerateDesignMissingImage(t *testing.T) {
	gen := &stubGenerator{}
	app := newTestApp(gen)

	body, contentType := designForm(t, nil, defaultFields()...)
	req := httptest.NewRequest(http.MethodPost, "/generate_design/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.GenerateDesign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec); !strings.Contains(detail, "image") {
		t.Fatalf("detail = %q", detail)
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be called without an upload")
	}
}

func TestGenerateDesignNotMultipart(t *testing.T) {
	gen := &stubGenerator{}
	app := newTestApp(gen)

	req := httptest.NewRequest(http.MethodPost, "/generate_design/", strings.NewReader(`{"room_type":"kitchen"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.GenerateDesign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be called for a malformed form")
	}
}

func TestGenerateDesignMissingRequiredField(t *testing.T) {
	gen := &stubGenerator{}
	app := newTestApp(gen)

	body, contentType := designForm(t, []byte{1}, formField{"room_type", "kitchen"}, formField{"style", "classic"})
	req := httptest.NewRequest(http.MethodPost, "/generate_design/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.GenerateDesign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec); !strings.Contains(detail, "color_palette") {
		t.Fatalf("detail = %q", detail)
	}
}

func TestGenerateDesignRoomSizeDefault(t *testing.T) {
	gen := &stubGenerator{result: &domain.GenerationResult{ImageBase64: "x"}}
	app := newTestApp(gen)

	body, contentType := designForm(t, []byte{1}, defaultFields()...)
	req := httptest.NewRequest(http.MethodPost, "/generate_design/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.GenerateDesign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// The handler forwards the empty room_size; the gateway applies the
	// default during normalization.
	if gen.req.RoomSize != "" {
		t.Fatalf("room_size = %q, want empty passthrough", gen.req.RoomSize)
	}
}

func TestGenerateDesignUpstreamErrorMirrored(t *testing.T) {
	gen := &stubGenerator{err: &domain.UpstreamError{Status: http.StatusUnauthorized, Body: `{"message":"invalid api key"}`}}
	app := newTestApp(gen)

	body, contentType := designForm(t, []byte{1}, defaultFields()...)
	req := httptest.NewRequest(http.MethodPost, "/generate_design/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.GenerateDesign(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if detail := decodeDetail(t, rec); !strings.Contains(detail, "invalid api key") {
		t.Fatalf("provider body not echoed: %q", detail)
	}
}

func TestGenerateDesignEmptyResult(t *testing.T) {
	gen := &stubGenerator{err: domain.ErrEmptyResult}
	app := newTestApp(gen)

	body, contentType := designForm(t, []byte{1}, defaultFields()...)
	req := httptest.NewRequest(http.MethodPost, "/generate_design/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.GenerateDesign(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestGenerateDesignUnreachableProvider(t *testing.T) {
	gen := &stubGenerator{err: domain.ErrUnreachable}
	app := newTestApp(gen)

	body, contentType := designForm(t, []byte{1}, defaultFields()...)
	req := httptest.NewRequest(http.MethodPost, "/generate_design/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.GenerateDesign(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
