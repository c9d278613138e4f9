package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// legalDocs maps the {doc} path value to its file in LegalConfig.DocsDir.
// Only these names can be requested, so the path value never reaches the filesystem.
var legalDocs = map[string]string{
	"privacy": "privacy.md",
	"terms":   "terms.md",
}

// LegalConfig holds configuration for the LegalHandler.
type LegalConfig struct {
	// DocsDir is the directory holding the Markdown notices (LEGAL_DOCS_DIR).
	DocsDir string
}

// LegalHandler serves the privacy notice linked from the contact form.
type LegalHandler struct {
	cfg LegalConfig
}

// NewLegalHandler creates a LegalHandler with the given configuration.
func NewLegalHandler(cfg LegalConfig) *LegalHandler {
	return &LegalHandler{cfg: cfg}
}

// Legal handles GET /legal/{doc}.
func (h *LegalHandler) Legal(w http.ResponseWriter, r *http.Request) {
	name, ok := legalDocs[r.PathValue("doc")]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	content, err := os.ReadFile(filepath.Join(h.cfg.DocsDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		slog.Error("read legal doc", "doc", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
