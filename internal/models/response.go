package models

type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse wraps an error message for a non-2xx reply.
func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}
