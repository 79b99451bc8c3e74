// Copyright 2026 beogip
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server exposes the assistant over HTTP. The boundary is thin:
// it decodes the conversation, runs the answering pipeline and optionally
// attaches synthesized audio. Failures are reported with one opaque
// message so internals never leak to clients.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/beogip/boredGPT/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const errorMessage = "There was an error processing your request. Try again."

// Responder answers a conversation. Satisfied by the chat pipeline.
type Responder interface {
	Respond(ctx context.Context, messages []core.Message) (core.Answer, error)
}

// Speaker synthesizes audio for an answer. Satisfied by the tts client.
type Speaker interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Server wires the answering pipeline into an HTTP handler.
type Server struct {
	responder Responder
	speaker   Speaker
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithSpeaker enables audio synthesis on answers.
func WithSpeaker(speaker Speaker) Option {
	return func(s *Server) {
		s.speaker = speaker
	}
}

// WithLogger replaces the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger.With("component", "server")
	}
}

// New creates a Server around a responder.
func New(responder Responder, opts ...Option) *Server {
	s := &Server{
		responder: responder,
		logger:    slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/chat", s.handleChat)
	return r
}

type chatRequest struct {
	Messages []core.Message `json:"messages"`
}

type chatResponse struct {
	Answer  string `json:"answer"`
	Article string `json:"article"`
	Audio   string `json:"audio,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("malformed request body", "error", err)
		s.writeError(w)
		return
	}

	answer, err := s.responder.Respond(r.Context(), req.Messages)
	if err != nil {
		s.logger.Error("pipeline failed", "error", err)
		s.writeError(w)
		return
	}

	resp := chatResponse{Answer: answer.Text, Article: answer.SourceURL}
	if s.speaker != nil {
		audio, err := s.speaker.Synthesize(r.Context(), answer.Text)
		if err != nil {
			// an answer without audio beats no answer
			s.logger.Warn("speech synthesis failed", "error", err)
		} else {
			resp.Audio = audio
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": errorMessage})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
