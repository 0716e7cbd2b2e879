package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	archerrors "github.com/NVIDIA/arch-stack/pkg/errors"
	"github.com/NVIDIA/arch-stack/pkg/serializer"
)

// HTTPStatusFromCode maps a structured error code to an HTTP status.
// Expected query outcomes map to client-side statuses; only genuinely
// unexpected failures surface as 500.
func HTTPStatusFromCode(code string) int {
	switch code {
	case archerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case archerrors.ErrCodeUnknownTarget:
		return http.StatusNotFound
	case archerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case archerrors.ErrCodeAmbiguousMatch:
		return http.StatusConflict
	case archerrors.ErrCodeUnsupportedCompiler:
		return http.StatusUnprocessableEntity
	case archerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code string) bool {
	switch code {
	case archerrors.ErrCodeRateLimitExceeded, archerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

// WriteError writes an error response with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes an error response derived from err. Structured
// errors carry their own code, message, and details; anything else is
// reported as an internal error with the fallback message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, details map[string]any) {

	code := archerrors.ErrCodeInternal
	message := fallbackMessage

	var se *archerrors.StructuredError
	if errors.As(err, &se) {
		code = se.Code
		message = se.Message
		details = mergeDetails(se.Details, details)
		if se.Err != nil {
			details = mergeDetails(details, map[string]any{"error": se.Err.Error()})
		}
	} else if err != nil {
		details = mergeDetails(details, map[string]any{"error": err.Error()})
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), details)
}
