package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/sprite-ai/mergemate/internal/gitx"
	"github.com/sprite-ai/mergemate/internal/model"
	"github.com/sprite-ai/mergemate/internal/review"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Root help ---

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":    "mergemate",
		"version": s.version,
		"endpoints": map[string]string{
			"GET /healthz":    "liveness probe",
			"POST /v1/review": "analyze a repo at a ref, optionally diffed against base_ref",
			"POST /v1/file":   "fetch a single file's text content at a ref",
			"GET /v1/ws":      "run reviews over a websocket with progress streaming",
		},
		"notes": []string{
			"HTTPS read-only fetch per request; nothing is cached between calls.",
			"Use keywords or base_ref to focus relevance; results are capped and sorted.",
		},
	})
}

// --- Review ---

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := s.engine.Review(r.Context(), req, nil)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// --- File ---

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	var req model.FileRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	content, err := s.engine.FetchFile(r.Context(), req)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, content)
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	var (
		validation *review.ValidationError
		remote     *gitx.RemoteError
		fetch      *gitx.FetchError
		diffErr    *gitx.DiffError
		traversal  *gitx.TraversalError
		notFound   *gitx.NotFoundError
		repoSize   *gitx.TooLargeError
		fileSize   *review.FileTooLargeError
		binary     *review.BinaryFileError
	)
	switch {
	case errors.As(err, &validation),
		errors.As(err, &remote),
		errors.As(err, &fetch),
		errors.As(err, &diffErr),
		errors.As(err, &traversal):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &repoSize), errors.As(err, &fileSize):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &binary):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
