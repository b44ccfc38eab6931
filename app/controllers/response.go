package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"publicator/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// APIError is the body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	msgInvalidID   = "Validation failed (numeric string is expected)"
	msgInvalidBody = "Invalid request body"
	msgInternal    = "Internal server error"
)

// badRequest marks boundary failures that happen before a service is called
type badRequest struct {
	message string
}

func (e *badRequest) Error() string { return e.message }

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// sendError maps an error to its status code. Unknown errors are logged and
// answered with a generic 500.
func sendError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var br *badRequest
	if errors.As(err, &br) {
		sendJSON(w, http.StatusBadRequest, APIError{Code: "BAD_REQUEST", Message: br.message})
		return
	}

	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		status, code := statusFor(err)
		sendJSON(w, status, APIError{Code: code, Message: svcErr.Message})
		return
	}

	log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	sendJSON(w, http.StatusInternalServerError, APIError{Code: "INTERNAL_ERROR", Message: msgInternal})
}

// statusFor maps the rejection kind carried by err to a status and error code
func statusFor(err error) (int, string) {
	switch services.KindOf(err) {
	case services.KindBadRequest:
		return http.StatusBadRequest, "BAD_REQUEST"
	case services.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case services.KindConflict:
		return http.StatusConflict, "CONFLICT"
	case services.KindForbidden:
		return http.StatusForbidden, "FORBIDDEN"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// parseID reads the {id} route variable
func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, &badRequest{message: msgInvalidID}
	}
	return id, nil
}

// decodeJSON decodes the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &badRequest{message: msgInvalidBody}
	}
	return nil
}

// validationFailed wraps a validator error for sendError
func validationFailed(message string) error {
	return &badRequest{message: message}
}

// NotFound answers unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusNotFound, APIError{Code: "NOT_FOUND", Message: "Cannot " + r.Method + " " + r.URL.Path})
}

// MethodNotAllowed answers known routes hit with an unsupported method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusMethodNotAllowed, APIError{Code: "METHOD_NOT_ALLOWED", Message: "Method " + r.Method + " not allowed"})
}

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
