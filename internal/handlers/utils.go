package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/copyforge/apiserver/internal/auth"
)

type contextKey string

const contextSubjectKey contextKey = "sub"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Used  *int   `json:"used,omitempty"`
	Limit *int   `json:"limit,omitempty"`
}

func subjectFromContext(ctx context.Context) (auth.Subject, error) {
	subject, ok := ctx.Value(contextSubjectKey).(auth.Subject)
	if !ok || subject.ID == "" {
		return auth.Subject{}, errors.New("missing subject")
	}
	return subject, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeQuotaError(w http.ResponseWriter, used, limit int) {
	writeJSON(w, http.StatusForbidden, ErrorResponse{
		Error: "generation quota exceeded",
		Used:  &used,
		Limit: &limit,
	})
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
