package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/storage"

	"github.com/gorilla/mux"
)

// ProofHandler stores and serves payment proof files (receipts,
// transfer screenshots).
type ProofHandler struct {
	store    storage.Store
	maxBytes int64
}

func NewProofHandler(store storage.Store, maxFileSizeMB int64) *ProofHandler {
	return &ProofHandler{
		store:    store,
		maxBytes: maxFileSizeMB * 1024 * 1024,
	}
}

var allowedProofTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

func (h *ProofHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, err := principalFrom(r); err != nil {
		writeError(w, err)
		return
	}
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeError(w, &domain.ValidationError{Field: "filename", Msg: "filename query parameter is required"})
		return
	}
	contentType := r.Header.Get("Content-Type")
	if !allowedProofTypes[strings.TrimSpace(strings.Split(contentType, ";")[0])] {
		writeError(w, &domain.ValidationError{Field: "content_type", Msg: "only JPEG, PNG and PDF proofs are accepted"})
		return
	}

	key := h.store.NewKey(filename)
	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	defer body.Close()
	if err := h.store.Save(r.Context(), key, body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"proof_ref": key,
		"url":       h.store.URL(key),
	})
}

func (h *ProofHandler) Download(w http.ResponseWriter, r *http.Request) {
	if _, err := principalFrom(r); err != nil {
		writeError(w, err)
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, &domain.ValidationError{Field: "key", Msg: "key query parameter is required"})
		return
	}
	file, err := h.store.Open(r.Context(), key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "proof not found"})
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, file)
}

func (h *ProofHandler) Register(router *mux.Router) {
	router.HandleFunc("/storage/upload", h.Upload).Methods(http.MethodPut)
	router.HandleFunc("/storage/download", h.Download).Methods(http.MethodGet)
}
