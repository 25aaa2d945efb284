package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"SketchBoard3D/internal/service"
)

const (
	VectorizePath = "/api/vectorize"
	LivePath      = "/ws"
	HealthPath    = "/healthz"
)

// Server exposes a service.Service over HTTP and websocket.
type Server struct {
	svc      *service.Service
	maxBody  int64
	peers    *PeerManager
	upgrader websocket.Upgrader
}

// NewServer wraps svc. Request bodies and websocket messages larger than maxBody are rejected.
func NewServer(svc *service.Service, maxBody int64) *Server {
	return &Server{
		svc:     svc,
		maxBody: maxBody,
		peers:   NewPeerManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The sketch pad and browser front ends are served from other origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Peers returns the live websocket connections.
func (s *Server) Peers() *PeerManager {
	return s.peers
}

// Handler returns the routing for all endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(VectorizePath, s.handleVectorize)
	mux.HandleFunc(LivePath, s.handleLive)
	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[HTTP] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Println("[HTTP] Shutting down")
	s.peers.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleVectorize(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-ID", reqID)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req service.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
			return
		}
		log.Printf("[HTTP] %s rejected malformed body: %v", reqID, err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON: " + err.Error()})
		return
	}

	resp, err := s.svc.Vectorize(req)
	if err != nil {
		status, body := statusFor(err)
		log.Printf("[HTTP] %s failed with %d: %v", reqID, status, err)
		writeJSON(w, status, body)
		return
	}

	log.Printf("[HTTP] %s vectorized %d strokes / %d shapes into %d specs in %v",
		reqID, len(req.Strokes), len(req.RecognizedShapes), len(resp.Shapes), time.Since(start).Round(time.Microsecond))
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps a pipeline error to a status code and a client-safe body.
func statusFor(err error) (int, errorBody) {
	switch {
	case errors.Is(err, service.ErrMissingInput):
		return http.StatusBadRequest, errorBody{Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorBody{Error: "internal error"}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Error writing response: %v", err)
	}
}
