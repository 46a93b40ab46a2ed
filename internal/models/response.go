package models

// APIResponse is the envelope every endpoint writes. Success responses carry
// their payload in Data; failures carry a message and, for validation
// failures, a per-field error map.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
	}
}

// NewUnauthorizedResponse is the shared body for requests that arrive
// without a usable identity.
func NewUnauthorizedResponse() APIResponse {
	return NewErrorResponse("Unauthorized")
}

func NewValidationErrorResponse(errors map[string]string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   "Validation failed",
		Errors:  errors,
	}
}

// ImageUploadResponse describes a stored photo or logo upload. URL is what
// gets written into the profile's photo field.
type ImageUploadResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// InlineImageResponse is the ?inline=true upload variant: the bounded image
// as a data URI, embedded directly in the profile instead of stored on disk.
type InlineImageResponse struct {
	DataURI string `json:"data_uri"`
}
