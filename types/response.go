package types

const (
	MsgInvalidInput  = "Invalid input"
	MsgUnauthorized  = "Unauthorized access"
	MsgInternalError = "internal server error"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    ErrorCode   `json:"code,omitempty"`
}
