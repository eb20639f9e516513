package vizmodel

// Response is the envelope every API endpoint returns.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

// Err wraps a message in a failed envelope.
func Err[T any](message string) Response[T] {
	return Response[T]{Success: false, Error: message}
}
