// internal/api/types/response.go
package types

// Envelope is the uniform response shape for every operation: either
// {"success":true,"data":...} or {"success":false,"error":"..."}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a payload in a success envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps a message in a failure envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
