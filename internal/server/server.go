// Package server exposes portrait analysis over HTTP.
//
// Routes:
//
//	GET  /         status probe
//	POST /analyze  multipart field "file", or JSON {"image": "<base64>"}
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/haneulpalette/haneul/internal/analysis"
	imgutil "github.com/haneulpalette/haneul/internal/image"
	"github.com/haneulpalette/haneul/internal/recommend"
)

// DefaultMaxBodyBytes limits request bodies.
const DefaultMaxBodyBytes = 20 << 20

// Processor turns a decoded image into a report.
type Processor interface {
	Process(img image.Image) (recommend.Report, error)
}

// Config configures a Server.
type Config struct {
	Addr         string
	Processor    Processor
	Logger       hclog.Logger
	MaxBodyBytes int64
}

// Server is the HTTP front end.
type Server struct {
	cfg    Config
	logger hclog.Logger
	http   *http.Server
}

// New creates a Server.
func New(cfg Config) (*Server, error) {
	if cfg.Processor == nil {
		return nil, errors.New("server requires a processor")
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := &Server{cfg: cfg, logger: logger.Named("server")}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleStatus)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type analyzeResponse struct {
	Status string           `json:"status"`
	Result recommend.Report `json:"result"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type analyzeRequest struct {
	Image string `json:"image"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "running", Message: "Haneul Palette analysis backend"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	data, err := readImage(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	img, err := imgutil.DecodeBytes(data)
	if err != nil {
		s.fail(w, err)
		return
	}

	rep, err := s.cfg.Processor.Process(img)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.logger.Debug("analysed upload",
		"bytes", len(data),
		"undertone", rep.Undertone.String(),
		"depth", rep.Depth.String(),
		"face_shape", rep.FaceShape.Name(),
		"elapsed", time.Since(start))
	writeJSON(w, http.StatusOK, analyzeResponse{Status: "success", Result: rep})
}

// readImage extracts the raw image bytes from a multipart or JSON body.
func readImage(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		file, _, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return nil, imgutil.ErrNoImage
			}
			return nil, badRequest("invalid multipart body", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, badRequest("failed to read upload", err)
		}
		return data, nil

	case mediaType == "application/json":
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, badRequest("invalid JSON body", err)
		}
		if req.Image == "" {
			return nil, imgutil.ErrNoImage
		}
		// Accept data URLs as produced by browsers.
		if i := strings.Index(req.Image, ";base64,"); i >= 0 && strings.HasPrefix(req.Image, "data:") {
			req.Image = req.Image[i+len(";base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return nil, badRequest("invalid base64 image", err)
		}
		return data, nil

	default:
		return nil, &requestError{
			status:  http.StatusUnsupportedMediaType,
			message: "Unsupported content type",
			err:     fmt.Errorf("content type %q", mediaType),
		}
	}
}

type requestError struct {
	status  int
	message string
	err     error
}

func (e *requestError) Error() string { return e.message + ": " + e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(msg string, err error) error {
	return &requestError{status: http.StatusBadRequest, message: msg, err: err}
}

// fail maps err onto a status code and writes the JSON error body.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status, resp := http.StatusInternalServerError, errorResponse{Error: "Processing failed", Details: err.Error()}

	var reqErr *requestError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, imgutil.ErrNoImage):
		status, resp = http.StatusBadRequest, errorResponse{Error: "No image provided"}
	case errors.As(err, &maxErr):
		status, resp.Error = http.StatusRequestEntityTooLarge, "Image too large"
	case errors.As(err, &reqErr):
		status, resp.Error = reqErr.status, reqErr.message
	case errors.Is(err, analysis.ErrInvalidRaster), errors.Is(err, imgutil.ErrDecode):
		status, resp.Error = http.StatusBadRequest, "Invalid image"
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("analysis failed", "error", err)
	} else {
		s.logger.Debug("rejected request", "status", status, "error", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
