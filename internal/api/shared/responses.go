package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Business result codes carried in every response envelope. The HTTP
// status says how the request went at the transport level; the code
// says what happened in business terms, so clients can branch without
// parsing messages.
const (
	CodeSuccess      = "000000"
	CodeValidation   = "A00003"
	CodeConflict     = "A00409"
	CodeUnauthorized = "C00401"
	CodeNotFound     = "B00404"
	CodeInternal     = "B00500"
	CodeUnknown      = "Z09999"
)

// TimestampLayout is the wall-clock format used in envelopes. Kept
// human-readable rather than RFC 3339 for client compatibility.
const TimestampLayout = "2006-01-02 15:04:05"

// Envelope is the uniform body of every JSON response, success or error.
type Envelope struct {
	Code       string `json:"code"`
	StatusCode int    `json:"statusCode"`
	Msg        string `json:"msg"`
	Data       any    `json:"data"`
	Timestamp  string `json:"timestamp"`
}

// NewEnvelope assembles an envelope stamped with the current time.
func NewEnvelope(code string, status int, msg string, data any) Envelope {
	return Envelope{
		Code:       code,
		StatusCode: status,
		Msg:        msg,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(TimestampLayout),
	}
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondSuccess writes a success envelope (code 000000) around data.
func RespondSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, NewEnvelope(CodeSuccess, status, "success", data))
}

// RespondError writes an error envelope with a null data field. The
// trace ID is logged rather than exposed in the body.
func RespondError(w http.ResponseWriter, r *http.Request, status int, code string, msg string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"code", code,
		"message", msg,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, NewEnvelope(code, status, msg, nil))
}
