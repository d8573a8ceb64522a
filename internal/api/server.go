// Package api exposes the subscription endpoint backed by the CSV subscriber
// store. It is a thin collaborator around the watcher core: the watcher only
// ever reads the published CSV, this server is what appends to it.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Monika-msk/vtu-internyet/internal/subscribers"
)

type Server struct {
	router *chi.Mux
	store  *subscribers.FileStore
	logger *slog.Logger
}

func NewServer(store *subscribers.FileStore, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/", s.handleRoot)
	s.router.Post("/subscribe", s.handleSubscribe)
	s.router.Get("/subscribers.csv", s.handleSubscribersCSV)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": "vtu-internyet-subscriptions",
	})
}

type subscribePayload struct {
	Email string `json:"email"`
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var payload subscribePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	email := strings.TrimSpace(payload.Email)
	if email == "" || !strings.Contains(email, "@") {
		respondError(w, http.StatusBadRequest, "valid email required")
		return
	}

	added, err := s.store.Add(email)
	if err != nil {
		s.logger.Error("subscribe failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not store subscription")
		return
	}

	message := "Subscribed"
	if !added {
		message = "Already subscribed"
	}
	s.logger.Info("subscribe handled", "added", added)
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "message": message})
}

func (s *Server) handleSubscribersCSV(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.CSV()
	if err != nil {
		s.logger.Error("serving subscribers csv failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not read subscribers")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
