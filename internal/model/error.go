// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("resource conflict")
	ErrNoCourse       = errors.New("no course selected") // コース未選択で書き込めない
)

// ErrorDetail はAPIエラーレスポンスの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はクライアント向けの詳細と根本原因のエラーを保持します。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInternalError はDBなどの原因エラーを ErrInternalServer と結合して返します。
func NewInternalError(message string, cause error) *AppError {
	return NewAppError("INTERNAL_SERVER_ERROR", message, "", errors.Join(ErrInternalServer, cause))
}

func NewInvalidInputError(message, field string) *AppError {
	return NewAppError("INVALID_INPUT", message, field, ErrInvalidInput)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError("NOT_FOUND", message, "", ErrNotFound)
}
