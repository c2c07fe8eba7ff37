package dto

import "github.com/devcampr/devcampr/internal/pkg/query"

// APIResponse is the uniform envelope wrapping every response.
type APIResponse struct {
	Success    bool              `json:"success"`
	Count      *int              `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Token      string            `json:"token,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// OK wraps a single result.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// List wraps a list result with its count and pagination metadata.
func List(data interface{}, count int, pagination query.Pagination) APIResponse {
	return APIResponse{
		Success:    true,
		Count:      &count,
		Pagination: &pagination,
		Data:       data,
	}
}

// Fail wraps a user-facing error message.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}
