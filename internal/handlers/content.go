package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/copyforge/apiserver/internal/services"
	"github.com/copyforge/apiserver/internal/store"
	"github.com/copyforge/apiserver/types"
)

// ContentHandler provides HTTP handlers for content items.
type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ContentRouter registers content routes on the given router. All routes
// require authentication.
func ContentRouter(r chi.Router, contentService *services.ContentService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewContentHandler(contentService)

	r.Use(authMiddleware)
	r.Post("/", handler.CreateContent)
	r.Get("/", handler.ListContent)
}

// CreateContent stores a content item for the authenticated account. When a
// prompt is supplied and no body is, the body is produced by the generator.
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if strings.TrimSpace(req.Type) == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	var item types.ContentItem
	if strings.TrimSpace(req.Content) == "" {
		if strings.TrimSpace(req.Prompt) == "" {
			writeError(w, http.StatusBadRequest, "content or prompt is required")
			return
		}
		item, err = h.contentService.Generate(r.Context(), subject.ID, services.GenerateContentParams{
			Type:     req.Type,
			Title:    req.Title,
			Prompt:   req.Prompt,
			Tone:     req.Tone,
			Length:   req.Length,
			Keywords: req.Keywords,
			Status:   types.ContentStatus(req.Status),
		})
	} else {
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		item, err = h.contentService.Create(r.Context(), subject.ID, services.CreateContentParams{
			Type:    req.Type,
			Title:   req.Title,
			Content: req.Content,
			Status:  types.ContentStatus(req.Status),
		})
	}
	if err != nil {
		var quotaErr *store.QuotaExceededError
		switch {
		case errors.As(err, &quotaErr):
			writeQuotaError(w, quotaErr.Used, quotaErr.Limit)
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "account not found")
		case errors.Is(err, services.ErrInvalidContentStatus):
			writeError(w, http.StatusBadRequest, "invalid status")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create content")
		}
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// ListContent returns the authenticated account's content items.
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.contentService.ListByOwner(r.Context(), subject.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list content")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

type CreateContentRequest struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Status   string   `json:"status"`
	Prompt   string   `json:"prompt"`
	Tone     string   `json:"tone"`
	Length   string   `json:"length"`
	Keywords []string `json:"keywords"`
}
