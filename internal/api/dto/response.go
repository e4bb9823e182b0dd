package dto

import "time"

// Response is the envelope of every JSON response.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// LoginResponse adds the issued credential to the envelope.
type LoginResponse struct {
	Response
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds a failed envelope.
func Fail(message string, errs ...string) Response {
	return Response{Success: false, Message: message, Errors: errs}
}
