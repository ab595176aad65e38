package model

type ErrorResponse struct {
	Error   string `json:"error"`
	Data    any    `json:"data,omitempty"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ResultResponse is the success/failure envelope used by the form and email routes.
type ResultResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message,omitempty"`
	Data      any                 `json:"data,omitempty"`
	Error     string              `json:"error,omitempty"`
	Details   string              `json:"details,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	MessageId string              `json:"messageId,omitempty"`
	Debug     *DebugInfo          `json:"debug,omitempty"`
}

type DebugInfo struct {
	ApiUrl    string `json:"api_url"`
	ErrorType string `json:"error_type"`
}

type CodeResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
