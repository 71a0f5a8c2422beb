package httptransport

// ErrorResponse is the body returned when authentication or role checks
// reject a request before it reaches a module handler.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
