package dto

type TokenRequest struct {
	Username string `json:"username"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// DateLayout is the wire format for calendar dates in requests and
// responses.
const DateLayout = "2006-01-02"
