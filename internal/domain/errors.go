package domain

import "net/http"

type ErrorCode string

const (
	ErrorCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrorCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrorCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NotFound(msg string) *DomainError {
	return &DomainError{Code: ErrorCodeNotFound, Message: msg, HTTPStatus: http.StatusNotFound}
}

func Forbidden(msg string) *DomainError {
	return &DomainError{Code: ErrorCodeForbidden, Message: msg, HTTPStatus: http.StatusForbidden}
}
