// Package errors provides structured error handling for the application.
// It defines AppError type with error codes so CLI exit paths and API
// responses can classify failures consistently.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess       = 0
	CodeUnknown       = 1000
	CodeInvalidParams = 1001
	CodeNotFound      = 1002

	// Download errors (1100-1199)
	CodeAudioDownload  = 1100
	CodeUnsupportedURL = 1101
	CodeCookiesExpired = 1102

	// Transcription errors (1200-1299)
	CodeTranscribeFailed = 1200
	CodeModelNotFound    = 1201
	CodeEmptyTranscript  = 1202

	// Output errors (1300-1399)
	CodeFileWriteError = 1300

	// Storage errors (1500-1599)
	CodeDBError      = 1500
	CodeFileNotFound = 1501

	// Dependency errors (1600-1699)
	CodeDependencyMissing = 1600
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts error code from error, returns CodeUnknown if not AppError
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Predefined common errors
var (
	ErrInvalidParams = New(CodeInvalidParams, "参数错误 Invalid parameters")
	ErrNotFound      = New(CodeNotFound, "资源不存在 Resource not found")

	// Download
	ErrAudioDownload  = New(CodeAudioDownload, "音频下载失败 Audio download failed")
	ErrUnsupportedURL = New(CodeUnsupportedURL, "链接不合法 Unsupported URL")
	ErrCookiesExpired = New(CodeCookiesExpired, "Cookies已过期 Cookies expired")

	// Transcription
	ErrTranscribeFailed = New(CodeTranscribeFailed, "语音识别失败 Transcription failed")
	ErrModelNotFound    = New(CodeModelNotFound, "模型不存在 Model not found")
	ErrEmptyTranscript  = New(CodeEmptyTranscript, "未识别到语音内容 No speech detected")

	// Output
	ErrFileWrite = New(CodeFileWriteError, "文件写入失败 File write failed")

	// Storage
	ErrDBError      = New(CodeDBError, "数据库错误 Database error")
	ErrFileNotFound = New(CodeFileNotFound, "文件不存在 File not found")
)
