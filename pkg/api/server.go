// Zaparoo Trigram
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Trigram.
//
// Zaparoo Trigram is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Trigram is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Trigram.  If not, see <http://www.gnu.org/licenses/>.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/ZaparooProject/go-trigram/pkg/api/middleware"
	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/api/models/requests"
	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

// MaxRequestSize caps HTTP bodies and WebSocket messages.
const MaxRequestSize = 32 << 20

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg     *config.Instance
	engine  trigram.Engine
	methods *MethodMap
	clock   clockwork.Clock
	ws      *melody.Melody
}

func NewServer(
	cfg *config.Instance,
	engine trigram.Engine,
	methodMap *MethodMap,
	clock clockwork.Clock,
) *Server {
	ws := melody.New()
	ws.Config.MaxMessageSize = MaxRequestSize
	ws.Upgrader.CheckOrigin = checkOrigin(cfg.AllowedOrigins())

	return &Server{
		cfg:     cfg,
		engine:  engine,
		methods: methodMap,
		clock:   clock,
		ws:      ws,
	}
}

// handleRequest runs a single parsed request and returns its result or the
// error to report.
func (s *Server) handleRequest(ctx context.Context, req *models.RequestObject) (result any, errObj *models.ErrorObject) {
	fn, ok := s.methods.GetMethod(req.Method)
	if !ok {
		log.Warn().Str("method", req.Method).Msg("unknown method")
		return nil, &JSONRPCErrorMethodNotFound
	}

	start := s.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("method", req.Method).Msg("method panicked")
			result, errObj = nil, &JSONRPCErrorInternalError
		}
		log.Debug().
			Str("method", req.Method).
			Dur("took", s.clock.Since(start)).
			Msg("handled request")
	}()

	resp, err := fn(requests.RequestEnv{
		Context: ctx,
		Engine:  s.engine,
		Config:  s.cfg,
		Params:  req.Params,
		ID:      req.ID,
	})
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Msg("method returned error")
		e := errorObject(err)
		return nil, &e
	}
	return resp, nil
}

// processRequest handles one request object. It returns nil for
// notifications, which get no reply.
func (s *Server) processRequest(ctx context.Context, raw json.RawMessage) any {
	var req models.RequestObject
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Debug().Err(err).Msg("request does not match request object")
		return errorResponse(models.NullRPCID, JSONRPCErrorInvalidRequest)
	}

	id := req.ID
	if id.IsAbsent() {
		id = models.NullRPCID
	}

	if req.JSONRPC != models.JSONRPCVersion {
		log.Error().Str("jsonrpc", req.JSONRPC).Msg("unsupported payload version")
		return errorResponse(id, JSONRPCErrorInvalidRequest)
	}
	if req.Method == "" {
		return errorResponse(id, JSONRPCErrorInvalidRequest)
	}
	if req.ID.IsAbsent() {
		log.Debug().Str("method", req.Method).Msg("received notification, ignoring")
		return nil
	}

	result, errObj := s.handleRequest(ctx, &req)
	if errObj != nil {
		return errorResponse(req.ID, *errObj)
	}
	return models.ResponseObject{
		JSONRPC: models.JSONRPCVersion,
		ID:      req.ID,
		Result:  result,
	}
}

// processMessage handles a raw JSON-RPC message, single or batch, and
// returns the encoded reply. A nil reply means nothing should be sent.
func (s *Server) processMessage(ctx context.Context, msg []byte) []byte {
	if !json.Valid(msg) {
		log.Debug().Msg("data not valid json")
		return mustMarshal(errorResponse(models.NullRPCID, JSONRPCErrorParseError))
	}

	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		resp := s.processRequest(ctx, trimmed)
		if resp == nil {
			return nil
		}
		return mustMarshal(resp)
	}

	var batch []json.RawMessage
	if err := json.Unmarshal(trimmed, &batch); err != nil || len(batch) == 0 {
		return mustMarshal(errorResponse(models.NullRPCID, JSONRPCErrorInvalidRequest))
	}

	responses := make([]any, 0, len(batch))
	for _, raw := range batch {
		if resp := s.processRequest(ctx, raw); resp != nil {
			responses = append(responses, resp)
		}
	}
	if len(responses) == 0 {
		return nil
	}
	return mustMarshal(responses)
}

func errorResponse(id models.RPCID, errObj models.ErrorObject) models.ResponseErrorObject {
	log.Debug().Int("code", errObj.Code).Str("message", errObj.Message).Msg("sending error")
	return models.ResponseErrorObject{
		JSONRPC: models.JSONRPCVersion,
		ID:      id,
		Error:   &errObj,
	}
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("error marshalling response")
		data, _ = json.Marshal(errorResponse(models.NullRPCID, JSONRPCErrorInternalError)) //nolint:errchkjson // fixed shape
	}
	return data
}

// handlePostRequest answers JSON-RPC over plain HTTP POST. JSON-RPC errors
// are returned with status 200 and notifications with 204.
func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestSize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	resp := s.processMessage(r.Context(), body)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp); err != nil {
		log.Error().Err(err).Msg("error writing response")
	}
}

func (s *Server) handleWSMessage(session *melody.Session, msg []byte) {
	// heartbeat
	if bytes.Equal(msg, []byte("ping")) {
		if err := session.Write([]byte("pong")); err != nil {
			log.Error().Err(err).Msg("sending pong")
		}
		return
	}

	resp := s.processMessage(session.Request.Context(), msg)
	if resp == nil {
		return
	}
	if err := session.Write(resp); err != nil {
		log.Error().Err(err).Msg("error sending response")
	}
}

// checkOrigin accepts WebSocket upgrades without an Origin header, from
// localhost pages, or from a configured origin.
func checkOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		switch u.Hostname() {
		case "localhost", "127.0.0.1", "::1":
			return true
		default:
			log.Warn().Str("origin", origin).Msg("rejected websocket origin")
			return false
		}
	}
}

// Router builds the HTTP handler. Background work it starts stops when ctx
// is done.
func (s *Server) Router(ctx context.Context) http.Handler {
	perMinute, burst := s.cfg.RateLimit()
	limiter := middleware.NewIPRateLimiter(perMinute, burst, s.clock)
	limiter.StartCleanup(ctx)

	allowedOrigins := s.cfg.AllowedOrigins()
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.HTTPIPFilterMiddleware(middleware.NewIPFilter(s.cfg.AllowedIPs())))
	r.Use(chimiddleware.NoCache)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{},
	}))

	r.With(
		middleware.HTTPRateLimitMiddleware(limiter),
		chimiddleware.Timeout(config.APIRequestTimeout),
	).Post(config.APIPath, s.handlePostRequest)
	r.Get(config.APIPath, func(w http.ResponseWriter, r *http.Request) {
		if err := s.ws.HandleRequest(w, r); err != nil {
			log.Error().Err(err).Msg("handling websocket request")
		}
	})
	s.ws.HandleMessage(middleware.WebSocketRateLimitHandler(limiter, s.handleWSMessage))

	return r
}

// Close disconnects all WebSocket sessions.
func (s *Server) Close() error {
	if err := s.ws.Close(); err != nil && !errors.Is(err, melody.ErrClosed) {
		return fmt.Errorf("failed to close websocket sessions: %w", err)
	}
	return nil
}

// Start serves the API on the configured address until ctx is cancelled.
func Start(ctx context.Context, cfg *config.Instance, engine trigram.Engine) error {
	srv := NewServer(cfg, engine, NewMethodMap(), clockwork.NewRealClock())
	httpServer := &http.Server{
		Addr:              cfg.APIAddress(),
		Handler:           srv.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", httpServer.Addr).Msg("starting api server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
		log.Info().Msg("stopping api server")
	}

	if err := srv.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing websocket sessions")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
