package handlers

// StatusResponse is the standard API success body.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the standard API error body.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ToggleResponse is the body of a favorite toggle, carrying the new value.
type ToggleResponse struct {
	Status    string `json:"status"`
	NewStatus bool   `json:"new_status"`
}

func success() StatusResponse {
	return StatusResponse{Status: "success"}
}

func failure(message string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message}
}
