package usecase

import "errors"

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeCaptchaFailed      = "CAPTCHA_FAILED"
	CodeInvalidEstado      = "INVALID_ESTADO"
	CodeInvalidID          = "INVALID_ID"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeLeadNotFound       = "LEAD_NOT_FOUND"
	CodeDatabase           = "DATABASE_ERROR"
	CodeTokenIssue         = "TOKEN_ERROR"
)

// DomainError carries a message that is safe to return to the caller.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps an infrastructure failure. Message is generic; Err
// holds the cause for server-side logging only.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func newValidationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func newServerError(code string, err error) *TechnicalError {
	return &TechnicalError{Code: code, Message: "Error en el servidor", Err: err}
}
