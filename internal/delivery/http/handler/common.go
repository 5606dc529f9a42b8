package handler

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
