package utils

// ErrorResponse is the JSON shape for error replies.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewError builds an ErrorResponse from a message and an optional cause.
func NewError(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
