// Package reply writes JSON responses and JSON error bodies.
package reply

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	bs, err := json.Marshal(v)
	if err != nil {
		slog.Error("could not encode response", "err", err)
		Error(w, http.StatusInternalServerError, "could not encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bs)
}

func Error(w http.ResponseWriter, status int, message string) {
	bs, _ := json.Marshal(ErrorBody{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bs)
}
