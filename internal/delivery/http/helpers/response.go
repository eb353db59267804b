package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
)

// Pagination is the cursor metadata attached to paginated list responses.
// The cursor is opaque: clients pass it back verbatim to fetch the next page.
// swagger:model Pagination
type Pagination struct {
	HasMore bool   `json:"hasMore"`
	Cursor  string `json:"cursor,omitempty"`
}

// DataResponse is the success envelope: data plus optional pagination.
// swagger:model DataResponse
type DataResponse struct {
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponse is the error envelope.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSONSuccess writes statusCode and a data envelope without pagination.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// WriteJSONPage writes statusCode and a data envelope with pagination.
func WriteJSONPage(w http.ResponseWriter, statusCode int, data any, hasMore bool, cursor string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(DataResponse{
		Data:       data,
		Pagination: &Pagination{HasMore: hasMore, Cursor: cursor},
	})
}

// WriteJSONError writes statusCode and an error envelope.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code, Message: message})
}
