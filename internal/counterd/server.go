// Package counterd serves the shared figure total over HTTP in both shapes the board
// understands: a CountAPI-style atomic counter and a JSONBin-style document.
package counterd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Config selects which names the server answers to.
type Config struct {
	Namespace string
	Key       string
	Bin       string
	MasterKey string
	// StateFile persists the total across restarts when set.
	StateFile string
}

// Server holds the one shared counter.
type Server struct {
	mu    sync.Mutex
	cfg   Config
	total int64
}

type stateDoc struct {
	TouristCount int64 `json:"touristCount"`
}

type countValue struct {
	Value int64 `json:"value"`
}

type binResponse struct {
	Record   stateDoc       `json:"record"`
	Metadata map[string]any `json:"metadata"`
}

// New creates a server, restoring the total from cfg.StateFile if it exists.
func New(cfg Config) (*Server, error) {
	s := &Server{cfg: cfg}
	if cfg.StateFile == "" {
		return s, nil
	}
	data, err := os.ReadFile(cfg.StateFile)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	s.total = doc.TouristCount
	log.Printf("[COUNTERD] restored total %d from %s", s.total, cfg.StateFile)
	return s, nil
}

func (s *Server) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Set overwrites the total. The in-memory total only changes once it is persisted.
func (s *Server) Set(total int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(total); err != nil {
		return err
	}
	s.total = total
	return nil
}

func (s *Server) add(delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.total + delta
	if err := s.persist(next); err != nil {
		return s.total, err
	}
	s.total = next
	return next, nil
}

// persist writes total to the state file atomically. Caller holds s.mu.
func (s *Server) persist(total int64) error {
	if s.cfg.StateFile == "" {
		return nil
	}
	data, err := json.Marshal(stateDoc{TouristCount: total})
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.cfg.StateFile), ".counterd-*")
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("persist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist: %w", err)
	}
	return os.Rename(tmp.Name(), s.cfg.StateFile)
}

// Handler routes both API shapes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /get/{ns}/{key}", s.handleGet)
	mux.HandleFunc("GET /hit/{ns}/{key}", s.handleHit)
	mux.HandleFunc("GET /update/{ns}/{key}", s.handleUpdate)
	mux.HandleFunc("GET /b/{bin}", s.handleBinRead)
	mux.HandleFunc("PUT /b/{bin}", s.handleBinWrite)
	return mux
}

func (s *Server) counterMatches(r *http.Request) bool {
	return r.PathValue("ns") == s.cfg.Namespace && r.PathValue("key") == s.cfg.Key
}

func (s *Server) binAllowed(w http.ResponseWriter, r *http.Request) bool {
	if r.PathValue("bin") != s.cfg.Bin {
		http.NotFound(w, r)
		return false
	}
	if s.cfg.MasterKey != "" && r.Header.Get("X-Master-Key") != s.cfg.MasterKey {
		http.Error(w, "invalid master key", http.StatusUnauthorized)
		return false
	}
	return true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.counterMatches(r) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, countValue{Value: s.Total()})
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	s.increment(w, r, 1)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil {
		http.Error(w, "amount must be an integer", http.StatusBadRequest)
		return
	}
	if amount < 1 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	s.increment(w, r, amount)
}

func (s *Server) increment(w http.ResponseWriter, r *http.Request, delta int64) {
	if !s.counterMatches(r) {
		http.NotFound(w, r)
		return
	}
	total, err := s.add(delta)
	if err != nil {
		log.Printf("[COUNTERD] %v", err)
		http.Error(w, "could not persist", http.StatusInternalServerError)
		return
	}
	log.Printf("[COUNTERD] +%d -> %d (session %s)", delta, total, r.Header.Get("X-Session-Id"))
	writeJSON(w, countValue{Value: total})
}

func (s *Server) handleBinRead(w http.ResponseWriter, r *http.Request) {
	if !s.binAllowed(w, r) {
		return
	}
	writeJSON(w, binResponse{
		Record:   stateDoc{TouristCount: s.Total()},
		Metadata: map[string]any{"id": s.cfg.Bin},
	})
}

func (s *Server) handleBinWrite(w http.ResponseWriter, r *http.Request) {
	if !s.binAllowed(w, r) {
		return
	}
	var doc struct {
		TouristCount *int64 `json:"touristCount"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&doc); err != nil || doc.TouristCount == nil {
		http.Error(w, "body must be {\"touristCount\": n}", http.StatusBadRequest)
		return
	}
	if *doc.TouristCount < 0 {
		http.Error(w, "touristCount must not be negative", http.StatusBadRequest)
		return
	}
	if err := s.Set(*doc.TouristCount); err != nil {
		log.Printf("[COUNTERD] %v", err)
		http.Error(w, "could not persist", http.StatusInternalServerError)
		return
	}
	log.Printf("[COUNTERD] bin set to %d (session %s)", *doc.TouristCount, r.Header.Get("X-Session-Id"))
	writeJSON(w, binResponse{
		Record:   stateDoc{TouristCount: *doc.TouristCount},
		Metadata: map[string]any{"parentId": s.cfg.Bin},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[COUNTERD] write response: %v", err)
	}
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("[COUNTERD] listening on %s (namespace %q key %q bin %q)", addr, s.cfg.Namespace, s.cfg.Key, s.cfg.Bin)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
