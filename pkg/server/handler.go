package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/realtime-ai/textseg/pkg/tokenizer"
	"github.com/realtime-ai/textseg/pkg/trace"
	"go.uber.org/zap"
)

type tokenizeRequest struct {
	Text           *string `json:"text"`
	NormalizeASCII *bool   `json:"normalize_ascii,omitempty"`
}

type tokenizeResponse struct {
	RequestID string   `json:"request_id"`
	Tokens    []string `json:"tokens"`
}

type sentencesRequest struct {
	Text           *string `json:"text"`
	KeepWhitespace *bool   `json:"keep_whitespace,omitempty"`
	NormalizeASCII *bool   `json:"normalize_ascii,omitempty"`
}

type sentencesResponse struct {
	RequestID string     `json:"request_id"`
	Sentences [][]string `json:"sentences"`
}

type batchRequest struct {
	Texts          []string `json:"texts"`
	KeepWhitespace *bool    `json:"keep_whitespace,omitempty"`
	NormalizeASCII *bool    `json:"normalize_ascii,omitempty"`
}

type batchResponse struct {
	RequestID string       `json:"request_id"`
	Results   [][][]string `json:"results"`
}

type errorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

// handleTokenize handles POST /v1/tokenize.
func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	var req tokenizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Text == nil {
		s.writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	ctx, span := trace.StartSpan(r.Context(), "http.tokenize")
	defer span.End()
	span.SetAttributes(trace.RequestAttrs(RequestID(ctx), r.URL.Path)...)

	cfg := s.resolve(nil, req.NormalizeASCII)
	tokens := trace.Tokenize(ctx, *req.Text, cfg.NormalizeASCII)
	s.metrics.observeTokens(len(tokens))

	s.writeJSON(w, r, http.StatusOK, tokenizeResponse{
		RequestID: RequestID(ctx),
		Tokens:    tokens,
	})
}

// handleSentences handles POST /v1/sentences.
func (s *Server) handleSentences(w http.ResponseWriter, r *http.Request) {
	var req sentencesRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Text == nil {
		s.writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	ctx, span := trace.StartSpan(r.Context(), "http.sentences")
	defer span.End()
	span.SetAttributes(trace.RequestAttrs(RequestID(ctx), r.URL.Path)...)

	cfg := s.resolve(req.KeepWhitespace, req.NormalizeASCII)
	sentences := trace.SentenceTokenize(ctx, *req.Text, cfg.KeepWhitespace, cfg.NormalizeASCII)
	s.metrics.observeSentences(sentences)

	s.writeJSON(w, r, http.StatusOK, sentencesResponse{
		RequestID: RequestID(ctx),
		Sentences: sentences,
	})
}

// handleBatch handles POST /v1/batch.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Texts == nil {
		s.writeError(w, r, http.StatusBadRequest, "texts is required")
		return
	}
	if len(req.Texts) > s.config.MaxBatchSize {
		s.writeError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("batch of %d texts exceeds limit of %d", len(req.Texts), s.config.MaxBatchSize))
		return
	}

	ctx, span := trace.StartSpan(r.Context(), "http.batch")
	defer span.End()
	span.SetAttributes(trace.RequestAttrs(RequestID(ctx), r.URL.Path)...)

	cfg := s.resolve(req.KeepWhitespace, req.NormalizeASCII)
	results, err := trace.SentenceTokenizeBatch(ctx, tokenizer.NewRuleTokenizer(&cfg), req.Texts, s.config.BatchWorkers)
	if err != nil {
		trace.RecordError(span, err)
		s.logger.Warn("batch aborted",
			zap.String("request_id", RequestID(ctx)),
			zap.Error(err),
		)
		s.writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	for _, sentences := range results {
		s.metrics.observeSentences(sentences)
	}

	s.writeJSON(w, r, http.StatusOK, batchResponse{
		RequestID: RequestID(ctx),
		Results:   results,
	})
}

// resolve layers per-request overrides on the tokenizer's current config.
func (s *Server) resolve(keepWhitespace, normalizeASCII *bool) tokenizer.RuleConfig {
	cfg := *s.tokenizer.Config().(*tokenizer.RuleConfig)
	if keepWhitespace != nil {
		cfg.KeepWhitespace = *keepWhitespace
	}
	if normalizeASCII != nil {
		cfg.NormalizeASCII = *normalizeASCII
	}
	return cfg
}

// decode reads a size-limited JSON body into dst. On failure it writes the
// error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxTextBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.logger.Debug("invalid request body",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("failed to write response",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, errorResponse{
		RequestID: RequestID(r.Context()),
		Error:     msg,
	})
}
