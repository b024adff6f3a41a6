package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// ErrorResponse is the wire shape of every failure. detail carries the raw
// cause and is only populated in development mode.
type ErrorResponse struct {
	ErrorCode Code              `json:"error_code"`
	Message   string            `json:"message"`
	Solution  string            `json:"solution"`
	Field     string            `json:"field,omitempty"`
	Value     string            `json:"value,omitempty"`
	Detail    string            `json:"detail,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
	RequestID string            `json:"request_id"`
}

// RequestID returns the middleware-assigned request id, minting a fresh UUID
// when the request bypassed the middleware (direct handler tests, internal
// calls).
func RequestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

// WriteError renders any error as the taxonomy envelope. ValidationErrors
// become a 400 bundle with per-field entries; AppErrors keep their code;
// everything else is the general system error. Raw causes are exposed only
// in dev mode.
func WriteError(w http.ResponseWriter, r *http.Request, err error, devMode bool) {
	requestID := RequestID(r)

	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			ErrorCode: first.Code,
			Message:   first.Message,
			Solution:  Solution(first.Code),
			Field:     first.Field,
			Value:     first.Value,
			Errors:    validationErrs,
			RequestID: requestID,
		})
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{
			ErrorCode: appErr.Code,
			Message:   Message(appErr.Code),
			Solution:  Solution(appErr.Code),
			Field:     appErr.Field,
			Value:     appErr.Value,
			RequestID: requestID,
		}
		if devMode && appErr.Cause != nil {
			resp.Detail = appErr.Cause.Error()
		}
		writeJSON(w, httpStatus(appErr.Code), resp)
		return
	}

	resp := ErrorResponse{
		ErrorCode: CodeGeneral,
		Message:   Message(CodeGeneral),
		Solution:  Solution(CodeGeneral),
		RequestID: requestID,
	}
	if devMode && err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

// WriteCode renders a bare taxonomy code, for middleware that has no
// underlying error value (auth failures, method guard).
func WriteCode(w http.ResponseWriter, r *http.Request, code Code) {
	writeJSON(w, httpStatus(code), ErrorResponse{
		ErrorCode: code,
		Message:   Message(code),
		Solution:  Solution(code),
		RequestID: RequestID(r),
	})
}

// httpStatus maps a taxonomy code family to its HTTP status. Codes stay
// stable even if the status mapping evolves.
func httpStatus(code Code) int {
	switch code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeTimeout:
		return http.StatusGatewayTimeout
	}

	if len(code) > 0 && code[0] == '4' {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
