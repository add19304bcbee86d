package server

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Mictilt/qrdx"
	"github.com/Mictilt/qrdx/internal/config"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

var errBadRequest = errors.New("bad request")

// exportRequest is the JSON body of POST /api/qr.
type exportRequest struct {
	Payload  string       `json:"payload"`
	Preset   string       `json:"preset,omitempty"`
	Style    style.Config `json:"style"`
	Format   string       `json:"format,omitempty"`
	Size     int          `json:"size,omitempty"`
	Filename string       `json:"filename,omitempty"`
}

type exportResponse struct {
	Filename      string  `json:"filename"`
	MIMEType      string  `json:"mimeType"`
	DataURI       string  `json:"dataUri"`
	Version       int     `json:"version"`
	Level         string  `json:"level"`
	LevelUpgraded bool    `json:"levelUpgraded"`
	Contrast      float64 `json:"contrast"`
	Warning       string  `json:"warning,omitempty"`
}

type presetResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Style       style.Config `json:"style"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) presets(c *gin.Context) {
	out := make([]presetResponse, 0, len(s.cfg.Presets))
	for _, id := range s.cfg.PresetIDs() {
		p := s.cfg.Presets[id]
		out = append(out, presetResponse{ID: id, Name: p.Name, Description: p.Description, Style: p.Style})
	}
	c.JSON(http.StatusOK, out)
}

// getQR answers with the artifact bytes.
func (s *Server) getQR(c *gin.Context) {
	req, err := queryRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	art, err := s.export(req)
	if err != nil {
		s.fail(c, err)
		return
	}

	setArtifactHeaders(c, art)
	if download, _ := strconv.ParseBool(c.Query("download")); download {
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename}))
	}
	c.Data(http.StatusOK, art.MIMEType, art.Data)
}

// postQR answers with the artifact as a data URI in JSON.
func (s *Server) postQR(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.Wrapf(errBadRequest, "body: %v", err))
		return
	}
	art, err := s.export(req)
	if err != nil {
		s.fail(c, err)
		return
	}

	setArtifactHeaders(c, art)
	c.JSON(http.StatusOK, exportResponse{
		Filename:      art.Filename,
		MIMEType:      art.MIMEType,
		DataURI:       art.DataURI(),
		Version:       art.Version,
		Level:         art.Level.String(),
		LevelUpgraded: art.LevelUpgraded,
		Contrast:      art.Contrast.Ratio,
		Warning:       art.Contrast.Message(),
	})
}

func (s *Server) export(req exportRequest) (*qrdx.Artifact, error) {
	cfg, err := s.cfg.Style(req.Preset, req.Style)
	if err != nil {
		return nil, err
	}

	side := req.Size
	if side == 0 {
		side = cfg.Size
	}
	if side == 0 {
		side = style.DefaultDefaults().Size
	}
	if side > s.cfg.Server.MaxSize {
		return nil, &standard.SizeError{Width: side, Height: side, Min: standard.MinSide, Max: s.cfg.Server.MaxSize}
	}

	format := standard.Format(req.Format)
	if req.Format == "" {
		format = standard.FormatPNG
	}
	return qrdx.ExportArtifact(req.Payload, cfg, format, standard.Square(side),
		qrdx.WithFilename(req.Filename),
		qrdx.WithLogoLoader(s.cfg.LogoLoader(false)),
		qrdx.WithLogger(s.log.Zap()),
	)
}

// queryRequest reads GET /api/qr parameters.
func queryRequest(c *gin.Context) (exportRequest, error) {
	req := exportRequest{
		Payload:  c.Query("data"),
		Preset:   c.Query("preset"),
		Format:   c.Query("format"),
		Filename: c.Query("filename"),
		Style: style.Config{
			FgColor:             c.Query("fg"),
			BgColor:             c.Query("bg"),
			EyeColor:            c.Query("eye"),
			DotColor:            c.Query("dot"),
			BodyPattern:         c.Query("body"),
			CornerEyePattern:    c.Query("eyePattern"),
			CornerEyeDotPattern: c.Query("eyeDotPattern"),
			Level:               c.Query("level"),
			TemplateID:          c.Query("template"),
			CustomText:          c.Query("text"),
			Logo:                c.Query("logo"),
		},
	}
	req.Style.ShowLogo = req.Style.Logo != ""

	if v := c.Query("size"); v != "" {
		size, err := standard.ParseSize(v)
		if err != nil {
			return req, err
		}
		if err = standard.ValidateSize(size); err != nil {
			return req, err
		}
		req.Size = size.Width
	}
	if v := c.Query("margin"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.Wrapf(errBadRequest, "margin %q", v)
		}
		req.Style.Margin = &m
	}
	if v := c.Query("logoSize"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.Wrapf(errBadRequest, "logoSize %q", v)
		}
		req.Style.LogoSize = f
	}
	return req, nil
}

func setArtifactHeaders(c *gin.Context, art *qrdx.Artifact) {
	c.Header("X-QR-Version", strconv.Itoa(art.Version))
	c.Header("X-QR-Level", art.Level.String())
	if art.Contrast.Warning {
		c.Header("X-QR-Contrast-Warning", art.Contrast.Message())
	}
}

// statusFor maps the export error taxonomy to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, qrdx.ErrInvalidPayload),
		errors.Is(err, qrdx.ErrSizeOutOfBounds),
		errors.Is(err, qrdx.ErrUnsupportedFormat),
		errors.Is(err, qrdx.ErrLogoUnavailable),
		errors.Is(err, config.ErrUnknownPreset),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, qrdx.ErrCapacityExceeded),
		errors.Is(err, qrdx.ErrLogoReservationConflict):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Errorw("export failed", "path", c.Request.URL.Path, "error", err)
	}
	msg := err.Error()
	// size errors read best without the wrapping
	var sizeErr *standard.SizeError
	if errors.As(err, &sizeErr) {
		msg = sizeErr.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": strings.TrimSpace(msg)})
}
