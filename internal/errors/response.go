package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrorDetail is the client-visible part of an error response.
type ErrorDetail struct {
	Message          string                 `json:"message"`
	InternalError    string                 `json:"internal_error,omitempty"`
	ReportableErrors map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the JSON body returned for failed API requests.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse builds the response body for an error.
func NewErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message: err.Error(),
		},
	}

	var ie *InternalError
	if errors.As(err, &ie) {
		if ie.Hint() != "" {
			resp.Error.Message = ie.Hint()
			resp.Error.InternalError = ie.Error()
		}
		resp.Error.ReportableErrors = ie.ReportableDetails()
	}
	return resp
}

// HTTPStatusFromErr maps a classified error to an HTTP status code.
func HTTPStatusFromErr(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsValidation(err), IsInvalidOperation(err):
		return http.StatusBadRequest
	case IsPermissionDenied(err):
		return http.StatusForbidden
	case IsHTTPClient(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}
