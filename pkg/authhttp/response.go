package authhttp

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope of every answer.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPError is an error with a status and a stable code.
type HTTPError struct {
	Status int
	Code   string
}

func (e HTTPError) Error() string { return e.Code }

var (
	ErrUnauthorized = HTTPError{Status: http.StatusUnauthorized, Code: "unauthorized"}
	ErrBadRequest   = HTTPError{Status: http.StatusBadRequest, Code: "bad_request"}
	ErrUnsupported  = HTTPError{Status: http.StatusUnsupportedMediaType, Code: "unsupported_media_type"}
	ErrInternal     = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error"}
)

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Data: data})
}

func writeError(w http.ResponseWriter, e HTTPError) {
	writeJSON(w, e.Status, Response{Error: &ErrorDetail{Code: e.Code, Message: http.StatusText(e.Status)}})
}
