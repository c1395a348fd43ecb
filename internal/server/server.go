// Package server exposes a spellchecking engine over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"unicode/utf16"

	"spellchecker/internal/catalog"
	"spellchecker/internal/corrector"
	"spellchecker/internal/dictionary"
)

// Engine is the part of *corrector.SpellCorrector the API uses.
type Engine interface {
	SetDictionary(lang string) error
	Language() string
	IsMisspelled(word string) bool
	CheckString(text string) []corrector.MisspelledRange
	CheckSpelling(text []uint16) []corrector.MisspelledRange
	Suggest(word string) []string
	Add(word string)
	Remove(word string)
	AvailableDictionaries(path string) []string
}

// Store persists custom words. *customdict.CustomDict implements it.
type Store interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
}

// Server serializes engine mutations behind a RWMutex; queries share the
// read lock.
type Server struct {
	mu          sync.RWMutex
	engine      Engine
	store       Store
	searchPaths []string
	log         *slog.Logger
}

// New returns a Server. store may be nil, in which case custom words
// last only as long as the process. searchPaths is listed by
// GET /api/v1/dictionaries when the request names no path.
func New(engine Engine, store Store, searchPaths []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, store: store, searchPaths: searchPaths, log: logger}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/dictionary", s.setDictionary)
	mux.HandleFunc("GET /api/v1/dictionaries", s.listDictionaries)
	mux.HandleFunc("POST /api/v1/check", s.check)
	mux.HandleFunc("GET /api/v1/words/{word}", s.word)
	mux.HandleFunc("GET /api/v1/suggestions/{word}", s.suggestions)
	mux.HandleFunc("POST /api/v1/custom-word", s.addWord)
	mux.HandleFunc("DELETE /api/v1/custom-word/{word}", s.removeWord)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

// Reload loads the active dictionary again when file names a spelling of
// the active language. It is called when dictionary files change on disk.
func (s *Server) Reload(file string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.engine.Language()
	if active == "" || !slices.Contains(catalog.Candidates(active), file) {
		return nil
	}
	if err := s.engine.SetDictionary(active); err != nil {
		return err
	}
	s.log.Info("dictionary reloaded", "lang", active)
	return nil
}

type misspelling struct {
	corrector.MisspelledRange
	Word string `json:"word"`
}

func (s *Server) setDictionary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Language) == "" {
		writeError(w, http.StatusBadRequest, corrector.ErrInvalidInput)
		return
	}
	s.mu.Lock()
	err := s.engine.SetDictionary(req.Language)
	s.mu.Unlock()
	switch {
	case errors.Is(err, dictionary.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"language": req.Language})
	}
}

func (s *Server) listDictionaries(w http.ResponseWriter, r *http.Request) {
	paths := s.searchPaths
	if p := r.URL.Query().Get("path"); p != "" {
		paths = []string{p}
	}
	names := []string{}
	for _, p := range paths {
		names = append(names, s.engine.AvailableDictionaries(p)...)
	}
	slices.Sort(names)
	writeJSON(w, http.StatusOK, map[string][]string{"dictionaries": slices.Compact(names)})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, corrector.ErrInvalidInput)
		return
	}
	out := []misspelling{}
	s.mu.RLock()
	if r.URL.Query().Get("units") == "utf16" {
		units := utf16.Encode([]rune(req.Text))
		for _, m := range s.engine.CheckSpelling(units) {
			out = append(out, misspelling{m, string(utf16.Decode(units[m.Start:m.End]))})
		}
	} else {
		for _, m := range s.engine.CheckString(req.Text) {
			out = append(out, misspelling{m, req.Text[m.Start:m.End]})
		}
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"misspelled": out})
}

func (s *Server) word(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if err := corrector.ValidateWord(word); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.RLock()
	bad := s.engine.IsMisspelled(word)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"word": word, "misspelled": bad})
}

func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if err := corrector.ValidateWord(word); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.RLock()
	list := s.engine.Suggest(word)
	s.mu.RUnlock()
	if list == nil {
		list = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"word": word, "suggestions": list})
}

func (s *Server) addWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
		writeError(w, http.StatusBadRequest, corrector.ErrInvalidInput)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Add(r.Context(), req.Word); err != nil {
			s.log.Error("persist custom word", "word", req.Word, "err", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	s.engine.Add(req.Word)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) removeWord(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if err := corrector.ValidateWord(word); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Remove(r.Context(), word); err != nil {
			s.log.Error("persist removed word", "word", word, "err", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	s.engine.Remove(word)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
