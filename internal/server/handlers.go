package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/lexorder"
	"github.com/matzehuels/lexorder/pkg/pipeline"
)

type wordsRequest struct {
	Words []string `json:"words"`
}

type orderResponse struct {
	RunID  string   `json:"run_id"`
	Order  []string `json:"order"`
	Cached bool     `json:"cached"`
}

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	words, ok := s.decodeWords(w, r)
	if !ok {
		return
	}

	res, err := s.runner.Order(r.Context(), words, s.pipelineOptions())
	if err != nil {
		msg := errors.UserMessage(err)
		if res != nil && res.Inference != nil {
			msg = lexorder.Explain(err, res.Inference.Alphabet)
		}
		s.writeError(w, err, msg)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{
		RunID:  res.RunID,
		Order:  res.Document.Order,
		Cached: res.CacheInfo.Hit,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	words, ok := s.decodeWords(w, r)
	if !ok {
		return
	}

	opts := s.pipelineOptions()
	opts.Format = r.URL.Query().Get("format")
	if v := r.URL.Query().Get("detailed"); v != "" {
		detailed, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid detailed value %q", v), "detailed must be true or false")
			return
		}
		opts.Detailed = detailed
	}

	res, err := s.runner.Graph(r.Context(), words, opts)
	if err != nil {
		s.writeError(w, err, errors.UserMessage(err))
		return
	}

	ctype := "text/vnd.graphviz; charset=utf-8"
	if res.Format == pipeline.FormatSVG {
		ctype = "image/svg+xml"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("X-Run-ID", res.RunID)
	if res.Failure != nil {
		w.Header().Set("X-Inference-Error", res.Message)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data)
}

func (s *Server) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Workers: s.opts.Workers,
		Limits:  s.opts.Limits,
		TTL:     s.opts.TTL,
		Logger:  s.logger,
	}
}

// decodeWords parses the request body, answering 400 on failure.
func (s *Server) decodeWords(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req wordsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"), "invalid request body: "+err.Error())
		return nil, false
	}
	if req.Words == nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "missing words"), "missing words")
		return nil, false
	}
	return req.Words, true
}

func (s *Server) writeError(w http.ResponseWriter, err error, msg string) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: msg})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeCycleDetected, errors.ErrCodeRankCollision:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
