package model

type ErrorResponse struct {
	Timestamp        string           `json:"timestamp"`
	Status           int              `json:"status"`
	Error            string           `json:"error"`
	Message          string           `json:"message"`
	Path             string           `json:"path"`
	ValidationErrors []FieldViolation `json:"validationErrors,omitempty"`
}

type FieldViolation struct {
	Field         string `json:"field"`
	RejectedValue string `json:"rejectedValue"`
	Message       string `json:"message"`
}
