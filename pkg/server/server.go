// Package server exposes the HTTP boundary: the websocket endpoint, a
// health check, and the client bootstrap script.
package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/killfeedsc/killfeed/pkg/broadcast"
	"github.com/killfeedsc/killfeed/pkg/models"
)

// Server binds the HTTP endpoints. If the configured port is taken it
// falls through a small list of alternates, then lets the OS pick.
type Server struct {
	host       string
	port       int
	playerName string
	hub        *broadcast.Hub

	// BoundPort is the port actually bound, set once Run has a listener.
	BoundPort int
}

// New creates a server for the given hub.
func New(host string, port int, playerName string, hub *broadcast.Hub) *Server {
	return &Server{
		host:       host,
		port:       port,
		playerName: playerName,
		hub:        hub,
	}
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/config.js", s.handleConfigJS).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.hub.HandleWS)
	return r
}

// Run binds a listener and serves until the listener closes. It only
// returns an error when every port candidate fails.
func (s *Server) Run() error {
	candidates := []int{}
	if s.port > 0 {
		candidates = append(candidates, s.port)
	}
	candidates = append(candidates, 8081, 8888, 8000, 0) // 0: OS picks

	var lastErr error
	for _, p := range candidates {
		ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, p))
		if err != nil {
			lastErr = err
			continue
		}
		s.BoundPort = ln.Addr().(*net.TCPAddr).Port
		return http.Serve(ln, noCache(s.router()))
	}
	return fmt.Errorf("no usable port: %w", lastErr)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service": "killfeed",
		"status":  "healthy",
		"version": models.Version,
	})
}

// handleConfigJS serves the bootstrap the web client loads to find the
// websocket endpoint.
func (s *Server) handleConfigJS(w http.ResponseWriter, r *http.Request) {
	port := s.BoundPort
	if port == 0 {
		port = s.port
	}
	cfg, _ := json.Marshal(map[string]interface{}{
		"version":     models.Version,
		"ws_url":      fmt.Sprintf("ws://%s:%d/ws", s.host, port),
		"player_name": s.playerName,
	})
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	fmt.Fprintf(w, "window.KF = %s;", cfg)
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
