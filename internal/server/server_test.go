package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Mictilt/qrdx/internal/config"
	"github.com/Mictilt/qrdx/internal/logger"
	"github.com/Mictilt/qrdx/internal/server"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func newServer(t *testing.T) *server.Server {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Log.Debug = true
	return server.New(cfg, logger.Nop())
}

func do(t *testing.T, s *server.Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func Test_Health(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func Test_GetQR_PNG(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/qr?data=https%3A%2F%2Fexample.com&size=200&body=dots&download=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=qr-code-200x200.png`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("X-QR-Version"))
	assert.Equal(t, "Q", rec.Header().Get("X-QR-Level"))
	assert.Empty(t, rec.Header().Get("X-QR-Contrast-Warning"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func Test_GetQR_SVGPreset(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/qr?data=hello&format=svg&preset=neon&size=medium", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `fill="#0f172a"`)
	assert.Contains(t, rec.Body.String(), `width="400.000"`)
}

func Test_GetQR_ContrastWarning(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/qr?data=hello&format=svg&fg=%23dddddd", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hard to scan. Use more contrast colors.", rec.Header().Get("X-QR-Contrast-Warning"))
}

func Test_GetQR_Errors(t *testing.T) {
	cases := []struct {
		name   string
		target string
		status int
		msg    string
	}{
		{"empty payload", "/api/qr?data=", http.StatusBadRequest, "invalid payload"},
		{"too small", "/api/qr?data=x&size=49", http.StatusBadRequest, "Size must be at least 50x50 pixels"},
		{"over server max", "/api/qr?data=x&size=2500", http.StatusBadRequest, "Size must not exceed 2000x2000 pixels"},
		{"not square", "/api/qr?data=x&size=300x200", http.StatusBadRequest, "Width and height must be equal for QR codes"},
		{"bad size", "/api/qr?data=x&size=big", http.StatusBadRequest, "size out of bounds"},
		{"format", "/api/qr?data=x&format=gif", http.StatusBadRequest, "unsupported format"},
		{"preset", "/api/qr?data=x&preset=nope", http.StatusBadRequest, "unknown preset"},
		{"margin", "/api/qr?data=x&margin=wide", http.StatusBadRequest, "bad request"},
		{"logo file refused", "/api/qr?data=x&logo=%2Fetc%2Fpasswd", http.StatusBadRequest, "logo unavailable"},
		{"capacity", "/api/qr?level=H&data=" + strings.Repeat("a", 1300), http.StatusUnprocessableEntity, "capacity exceeded"},
	}
	s := newServer(t)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, c.target, nil)
			assert.Equal(t, c.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["error"], c.msg)
		})
	}
}

func Test_GetQR_NamedLogo(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "acme.svg")
	require.NoError(t, os.WriteFile(logo,
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 2 2"><rect width="2" height="2" fill="#f00"/></svg>`), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Logos["acme"] = logo
	s := server.New(cfg, logger.Nop())

	rec := do(t, s, http.MethodGet, "/api/qr?data=hello&format=svg&logo=acme&level=L", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "data:image/svg+xml;base64,")
	assert.Equal(t, "Q", rec.Header().Get("X-QR-Level"))
}

func Test_PostQR(t *testing.T) {
	body := []byte(`{"payload":"https://example.com","preset":"modern","style":{"fgColor":"#111111"},"format":"svg","size":300,"filename":"ticket"}`)
	rec := do(t, newServer(t), http.MethodPost, "/api/qr", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Filename string  `json:"filename"`
		MIMEType string  `json:"mimeType"`
		DataURI  string  `json:"dataUri"`
		Version  int     `json:"version"`
		Level    string  `json:"level"`
		Contrast float64 `json:"contrast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ticket.svg", resp.Filename)
	assert.Equal(t, "image/svg+xml", resp.MIMEType)
	assert.True(t, strings.HasPrefix(resp.DataURI, "data:image/svg+xml;charset=utf-8,"))
	assert.Equal(t, 2, resp.Version)
	assert.Equal(t, "Q", resp.Level)
	assert.Greater(t, resp.Contrast, 7.0)

	rec = do(t, newServer(t), http.MethodPost, "/api/qr", []byte(`{"payload":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Presets(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var presets []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Style struct {
			FgColor string `json:"fgColor"`
		} `json:"style"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &presets))
	require.NotEmpty(t, presets)
	assert.Equal(t, "default", presets[0].ID)
	assert.Equal(t, "Classic", presets[0].Name)
	assert.Equal(t, "#000000", presets[0].Style.FgColor)
}

func Test_Run_Shutdown(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Server.Addr = "127.0.0.1:0"
	s := server.New(cfg, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
