// Package api exposes the obfuscation transform over HTTP for local
// tooling that would rather not shell out to the CLI.
package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"veil-go/pkg/log"
	"veil-go/pkg/transform"
	"veil-go/pkg/veil"

	"github.com/klauspost/compress/zstd"
	"github.com/labstack/echo/v4"
)

// TransformRequest carries one encode or decode call. Data travels
// base64-encoded so the JSON layer never has to care about control
// characters in the 7-bit payload.
type TransformRequest struct {
	Data string `json:"data"`
	Key  string `json:"key"`
	Key2 string `json:"key2,omitempty"`
}

type TransformResponse struct {
	Data string `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Options is the daemon-wide configuration for the server.
type Options struct {
	ListenAddr string

	// DefaultKey2 is substituted when a request omits key2. Empty
	// selects veil.DefaultKey2.
	DefaultKey2 string

	// Compress adds a zstd stage after the obfuscation stage; encoded
	// payloads are then 8-bit, which the base64 wire format absorbs.
	Compress  bool
	ZstdLevel zstd.EncoderLevel
}

type Server struct {
	Api  *echo.Echo
	opts Options
}

func NewServer(opts Options) *Server {
	if opts.DefaultKey2 == "" {
		opts.DefaultKey2 = veil.DefaultKey2
	}
	if opts.ZstdLevel == 0 {
		opts.ZstdLevel = zstd.SpeedFastest
	}
	e := echo.New()
	e.HideBanner = true
	s := &Server{Api: e, opts: opts}
	e.POST("/encode", s.Encode)
	e.POST("/decode", s.Decode)
	e.GET("/healthz", s.Healthz)
	e.GET("/logs", s.Logs)
	return s
}

func (s *Server) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) Encode(c echo.Context) error {
	return s.transform(c, true)
}

func (s *Server) Decode(c echo.Context) error {
	return s.transform(c, false)
}

// pipeline builds the per-request transform chain. The zstd stage is
// created per request: the underlying encoder is not safe for
// concurrent handlers to share.
func (s *Server) pipeline(key, key2 string) (*transform.Pipeline, error) {
	if key2 == "" {
		key2 = s.opts.DefaultKey2
	}
	veilStage, err := transform.NewVeilTransform(key, key2)
	if err != nil {
		return nil, err
	}
	stages := []transform.Transform{veilStage}
	if s.opts.Compress {
		zstdStage, err := transform.NewZstdTransform(s.opts.ZstdLevel)
		if err != nil {
			return nil, err
		}
		stages = append(stages, zstdStage)
	}
	return transform.NewPipeline(stages)
}

func (s *Server) transform(c echo.Context, encode bool) error {
	var req TransformRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "data is not valid base64"})
	}

	p, err := s.pipeline(req.Key, req.Key2)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	var out []byte
	if encode {
		out, err = p.Forward(data)
	} else {
		out, err = p.Backward(data)
	}
	if err != nil {
		if errors.Is(err, veil.ErrOutOfRange) || errors.Is(err, veil.ErrEmptyKey) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		if !encode {
			// Backward failures mean the client sent something the
			// pipeline never produced.
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "payload does not decode"})
		}
		log.Error().Err(err).Msg("transform failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, TransformResponse{Data: base64.StdEncoding.EncodeToString(out)})
}

// Logs returns the most recent entries from the SQLite log sink, oldest
// first. Query parameter n caps the count (default 100).
func (s *Server) Logs(c echo.Context) error {
	n := 100
	if v := c.QueryParam("n"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil || i < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "n must be a non-negative integer"})
		}
		n = i
	}
	entries, err := log.GetLastNLogs(n)
	if err != nil {
		if errors.Is(err, log.ErrNotInitialized) {
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "log store not initialized"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	if entries == nil {
		entries = []log.LogEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) Run() {
	log.Info().Str("listen", s.opts.ListenAddr).Msg("starting API server")
	s.Api.Logger.Fatal(s.Api.Start(s.opts.ListenAddr))
}
