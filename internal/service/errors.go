package service

type ErrorCode string

const (
	ErrorCodeInvalidBody        ErrorCode = "INVALID_BODY"
	ErrorCodeUserExists         ErrorCode = "USER_EXISTS"
	ErrorCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrorCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrorCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeTeamFull           ErrorCode = "TEAM_FULL"
	ErrorCodeAlreadyMember      ErrorCode = "ALREADY_MEMBER"
	ErrorCodeUnspecified        ErrorCode = "UNSPECIFIED"
)

// Error is what services hand to the transport layer. Key names the
// localized message; Message is the English fallback.
type Error struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Key     string            `json:"-"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewValidationError(fields map[string]string) *Error {
	return &Error{
		Code:    ErrorCodeInvalidBody,
		Message: "request validation failed",
		Fields:  fields,
		Key:     "invalid_body",
	}
}

func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

func (e *Error) Error() string {
	return e.Message
}

// Predefined errors shared by handlers and services.
func ErrEventNotFound() *Error {
	return NewError(ErrorCodeNotFound, "Event not found").WithKey("event_not_found")
}

func ErrTeamNotFound() *Error {
	return NewError(ErrorCodeNotFound, "Team not found").WithKey("team_not_found")
}

