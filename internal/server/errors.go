package server

import "fmt"

// AppError is the JSON error envelope the API returns. Status drives the
// HTTP code and stays out of the body.
type AppError struct {
	Code    string        `json:"code"`
	Status  int           `json:"-"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail pins a message to the field it concerns.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// ErrorResponse wraps an AppError for the wire.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

func NewAppError(code string, status int, msg string) *AppError {
	return &AppError{Code: code, Status: status, Message: msg}
}

func UnknownFieldError(name string) *AppError {
	return &AppError{
		Code:    "UNKNOWN_FIELD",
		Status:  404,
		Message: fmt.Sprintf("Unknown custom field: %s", name),
	}
}

func ValidationError(details []ErrorDetail) *AppError {
	return &AppError{
		Code:    "VALIDATION_FAILED",
		Status:  422,
		Message: "Validation failed",
		Details: details,
	}
}

func BadRequestError(msg string) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Status:  400,
		Message: msg,
	}
}
