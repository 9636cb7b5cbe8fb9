package util

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"document-management-server/internal/common"
)

func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	errorResponse := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	WriteJSON(w, statusCode, errorResponse)
}

// WriteError answers with the status matching the error kind. Internal errors
// are logged in full and reported with an opaque message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := common.KindOf(err)
	if kind == common.KindInternal {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	HandleError(w, common.PublicMessage(err), StatusCode(kind))
}

func StatusCode(kind common.Kind) int {
	switch kind {
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindUnauthorized:
		return http.StatusUnauthorized
	case common.KindForbidden:
		return http.StatusForbidden
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
