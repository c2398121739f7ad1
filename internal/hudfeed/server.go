package hudfeed

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// LevelInfo is the public part of a level, served to HUD clients.
type LevelInfo struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Question string `json:"question"`
}

// Server exposes the hub and a small read-only API.
type Server struct {
	hub    *Hub
	levels []LevelInfo
	router *mux.Router
}

// NewServer routes /ws to hub and /api to the status handlers.
func NewServer(hub *Hub, levels []LevelInfo) *Server {
	s := &Server{
		hub:    hub,
		levels: levels,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/levels", s.handleLevels).Methods("GET")
	api.HandleFunc("/levels/{n}", s.handleLevel).Methods("GET")

	s.router.HandleFunc("/ws", s.hub.ServeWS)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type statusResponse struct {
	Clients int    `json:"clients"`
	Dropped int64  `json:"dropped"`
	Last    *Event `json:"last,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{Clients: s.hub.ClientCount(), Dropped: s.hub.Dropped()}
	if ev, ok := s.hub.Last(); ok {
		resp.Last = &ev
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLevels(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.levels)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil || n < 1 || n > len(s.levels) {
		respondError(w, http.StatusNotFound, "level not found")
		return
	}
	respondJSON(w, http.StatusOK, s.levels[n-1])
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // client went away
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
