package dto

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse is returned by operations that have no entity to show.
type MessageResponse struct {
	Message string `json:"message"`
}
