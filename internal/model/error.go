package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes returned in ErrorResponse.Code
const (
	CodeWrongPassword     = "WRONG_PASSWORD"
	CodeMalformedFile     = "MALFORMED_FILE"
	CodeCorruptedDetails  = "CORRUPTED_DETAILS"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInternal          = "INTERNAL"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodePasswordNotLoaded = "PASSWORD_NOT_LOADED"
)
