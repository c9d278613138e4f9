package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/givers/contactform/internal/model"
	"github.com/givers/contactform/internal/repository"
	"github.com/givers/contactform/internal/service"
)

// maxFormBytes bounds the request body of both submit endpoints.
const maxFormBytes = 64 << 10

// ContactHandler serves the contact page, its submissions and the exports.
type ContactHandler struct {
	submissionService service.SubmissionService
	maxMessageLength  int
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(submissionService service.SubmissionService, maxMessageLength int) *ContactHandler {
	return &ContactHandler{submissionService: submissionService, maxMessageLength: maxMessageLength}
}

// Page handles GET /.
func (h *ContactHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, formState{
		Submitted: r.URL.Query().Get("submitted") == "1",
	})
}

// SubmitForm handles POST / from the HTML form.
// Validation errors re-render the page with 422; a successful write redirects
// back to GET / so the table is re-read from the store.
func (h *ContactHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, formState{Errors: []string{service.MsgGeneric}})
		return
	}

	in := model.SubmissionInput{
		Name:     r.PostForm.Get("name"),
		Email:    r.PostForm.Get("email"),
		Message:  r.PostForm.Get("message"),
		Honeypot: r.PostForm.Get(honeypotField),
	}

	if errs := service.Validate(in, h.maxMessageLength); len(errs) > 0 {
		in.Honeypot = ""
		h.renderPage(w, r, http.StatusUnprocessableEntity, formState{Input: in, Errors: errs})
		return
	}

	if _, err := h.submissionService.Submit(r.Context(), in); err != nil {
		slog.Error("submission failed", "error", err)
		h.renderPage(w, r, http.StatusInternalServerError, formState{
			Input:       in,
			SubmitError: "Could not save your message: " + err.Error(),
		})
		return
	}

	http.Redirect(w, r, "/?submitted=1", http.StatusSeeOther)
}

func (h *ContactHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, form formState) {
	subs, readErr := h.submissionService.List(r.Context())
	if readErr != nil {
		slog.Warn("submission store unreadable", "error", readErr)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, buildPage(subs, readErr, form, h.maxMessageLength)); err != nil {
		slog.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// submitResponse is the JSON response for POST /api/contact.
type submitResponse struct {
	Submission *model.Submission `json:"submission"`
}

// SubmitJSON handles POST /api/contact.
// Fields: name, email, message, website (honeypot). Every validation failure
// is reported in "errors".
func (h *ContactHandler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	var in model.SubmissionInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}

	if errs := service.Validate(in, h.maxMessageLength); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string][]string{"errors": errs})
		return
	}

	sub, err := h.submissionService.Submit(r.Context(), in)
	if err != nil {
		slog.Error("submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "submit_failed"})
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{Submission: sub})
}

// listResponse is the JSON response for GET /api/submissions.
type listResponse struct {
	Submissions []*model.Submission `json:"submissions"`
	Total       int                 `json:"total"`
	Warning     string              `json:"warning,omitempty"`
}

// List handles GET /api/submissions. An unreadable store degrades to an
// empty list with a warning.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionService.List(r.Context())
	resp := listResponse{Submissions: subs, Total: len(subs)}
	if err != nil {
		slog.Warn("submission store unreadable", "error", err)
		resp.Warning = err.Error()
	}

	// Return [] not null for empty lists
	if resp.Submissions == nil {
		resp.Submissions = []*model.Submission{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ExportCSV handles GET /api/admin/submissions.csv (token-protected).
// Unlike the page, an unreadable store is an error here.
func (h *ContactHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionService.List(r.Context())
	if err != nil {
		slog.Error("export failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "read_failed"})
		return
	}

	var buf bytes.Buffer
	if err := repository.WriteCSV(&buf, subs); err != nil {
		slog.Error("export failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "export_failed"})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.csv"`)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
