package models

// Error kinds carried in the error field of failure responses.
const (
	ErrUnauthorized   = "Unauthorized"
	ErrForbidden      = "Forbidden"
	ErrNotFound       = "NotFound"
	ErrDuplicateEntry = "DuplicateEntry"
	ErrInvalidState   = "InvalidState"
	ErrValidation     = "ValidationError"
	ErrServer         = "ServerError"
)

// APIResponse is the uniform envelope of every endpoint. Count is set on
// list responses only.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

type LoginData struct {
	User     *User     `json:"user"`
	Token    string    `json:"token"`
	Employee *Employee `json:"employee,omitempty"`
}
