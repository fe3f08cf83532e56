// Package server provides the HTTP REST API for the onboarding dialogue
// engine. Each session owns one dialogue controller; handlers serialize
// access per session so the controller sees one operation at a time.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/talenthq/onboarding-engine/internal/config"
	"github.com/talenthq/onboarding-engine/internal/cvparse"
	"github.com/talenthq/onboarding-engine/internal/db"
	"github.com/talenthq/onboarding-engine/internal/dialogue"
	"github.com/talenthq/onboarding-engine/internal/fetch"
)

// session pairs a controller with the lock that serializes access to it.
type session struct {
	mu         sync.Mutex
	controller *dialogue.Controller
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	parser     dialogue.CVParser
	links      *fetch.Client

	sessionsMu sync.RWMutex
	sessions   map[uuid.UUID]*session
}

// New creates a server instance. The database and CV parser are optional
// collaborators: without a database completed drafts are not persisted,
// and without a parser CV uploads fall back to manual entry.
func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		links:    fetch.NewClient(),
		sessions: make(map[uuid.UUID]*session),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
	}

	if cfg.APIKey != "" {
		parser, err := cvparse.NewParser(context.Background(), cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create CV parser: %w", err)
		}
		s.parser = parser
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("GET /sessions/{id}/draft", s.handleGetDraft)
	mux.HandleFunc("GET /sessions/{id}/transcript", s.handleGetTranscript)
	mux.HandleFunc("POST /sessions/{id}/begin", s.handleBegin)
	mux.HandleFunc("POST /sessions/{id}/answer", s.handleAnswer)
	mux.HandleFunc("POST /sessions/{id}/choice", s.handleChoice)
	mux.HandleFunc("POST /sessions/{id}/cv", s.handleCVUpload)
	mux.HandleFunc("POST /sessions/{id}/skip", s.handleSkip)
	mux.HandleFunc("POST /sessions/{id}/confirm", s.handleConfirm)
	mux.HandleFunc("POST /sessions/{id}/tweak", s.handleTweak)
	mux.HandleFunc("POST /sessions/{id}/evidence", s.handleAttachEvidence)
	mux.HandleFunc("POST /sessions/{id}/finish", s.handleFinish)
	mux.HandleFunc("PATCH /sessions/{id}/draft", s.handlePatchDraft)
	mux.HandleFunc("POST /sessions/{id}/experience", s.handleAddExperience)
	mux.HandleFunc("PUT /sessions/{id}/experience/{entryID}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /sessions/{id}/experience/{entryID}", s.handleRemoveExperience)
	mux.HandleFunc("POST /sessions/{id}/education", s.handleAddEducation)
	mux.HandleFunc("PUT /sessions/{id}/education/{entryID}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /sessions/{id}/education/{entryID}", s.handleRemoveEducation)
	mux.HandleFunc("DELETE /sessions/{id}/traits", s.handleRemoveTrait)
	mux.HandleFunc("GET /profiles/{id}", s.handleGetProfile)
	mux.HandleFunc("GET /health", s.handleHealth)

	port := cfg.Port
	if port == 0 {
		port = 8080
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("onboarding engine listening on %s", s.httpServer.Addr)
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// newSession registers a controller and returns its session wrapper.
func (s *Server) newSession() *session {
	var store dialogue.ProfileStore
	if s.db != nil {
		store = s.db
	}
	controller := dialogue.New(s.parser, store)

	sess := &session{controller: controller}
	s.sessionsMu.Lock()
	s.sessions[controller.SessionID()] = sess
	s.sessionsMu.Unlock()
	return sess
}

// getSession looks up a session by ID.
func (s *Server) getSession(id uuid.UUID) (*session, bool) {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// sessionFromRequest parses the path ID and resolves the session, writing
// the error response itself when either step fails.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil, false
	}
	sess, ok := s.getSession(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return sess, true
}

// jsonResponse writes a JSON body with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error body with the given status.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
