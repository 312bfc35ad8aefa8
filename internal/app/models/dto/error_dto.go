package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"Forbidden"`
}

// NewErrorResponse creates an error body with the given message
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
