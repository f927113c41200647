package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cexll/fileheader/internal/engine"
	"github.com/cexll/fileheader/internal/header"
)

// maxBodyBytes bounds a single document payload.
const maxBodyBytes = 16 << 20

// Handler exposes the engine to editors over HTTP.
type Handler struct {
	engine *engine.Engine
	secret string
}

// NewHandler creates a handler; an empty secret disables token checks.
func NewHandler(e *engine.Engine, secret string) *Handler {
	return &Handler{engine: e, secret: secret}
}

type closeRequest struct {
	URI string `json:"uri"`
}

// RegisterRoutes registers the daemon routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	docs := r.PathPrefix("/documents").Subrouter()
	if h.secret != "" {
		docs.Use(requireToken(h.secret))
	}
	docs.HandleFunc("/will-save", h.handleWillSave).Methods("POST")
	docs.HandleFunc("/insert", h.handleInsert).Methods("POST")
	docs.HandleFunc("/close", h.handleClose).Methods("POST")

	r.HandleFunc("/languages", h.handleLanguages).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
}

// handleWillSave runs the save-time pass for one document
func (h *Handler) handleWillSave(w http.ResponseWriter, r *http.Request) {
	var doc engine.Document
	if !decode(w, r, &doc) {
		return
	}

	res, err := h.engine.WillSave(r.Context(), doc)
	if err != nil {
		log.Printf("will-save failed for %s: %v", doc.URI, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleInsert renders and prepends a header unconditionally
func (h *Handler) handleInsert(w http.ResponseWriter, r *http.Request) {
	var doc engine.Document
	if !decode(w, r, &doc) {
		return
	}

	res, err := h.engine.Insert(r.Context(), doc)
	if errors.Is(err, engine.ErrUnsupportedLanguage) {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	if err != nil {
		log.Printf("insert failed for %s: %v", doc.URI, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleClose drops throttle state for a closed document
func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.URI == "" {
		http.Error(w, "uri is required", http.StatusBadRequest)
		return
	}
	h.engine.Close(req.URI)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, header.Languages())
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
