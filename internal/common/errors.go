package common

import (
	"context"
	"errors"
	"fmt"
)

// AppError represents application-specific errors with a stable code and a
// short, non-technical reason safe to surface to polling callers.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Pipeline failure taxonomy. Every fatal pipeline error wraps one of these
// sentinels so callers can classify without string matching.
var (
	ErrNoValidInput       = errors.New("no valid input images")
	ErrAllModelsExhausted = errors.New("all models exhausted")
	ErrExtractionEmpty    = errors.New("extraction produced no data")
	ErrCancelled          = errors.New("cancelled")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// UserReason maps a pipeline error onto the short reason string written to
// the terminal progress record. Never a stack trace, never raw model text.
func UserReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoValidInput):
		return "Nenhuma imagem válida foi encontrada. Envie fotos nítidas do exame."
	case errors.Is(err, ErrAllModelsExhausted):
		return "O serviço de análise está indisponível no momento. Tente novamente em alguns minutos."
	case errors.Is(err, ErrExtractionEmpty):
		return "Não foi possível identificar exames nas imagens enviadas."
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return "Processamento cancelado."
	default:
		return "Falha ao processar o exame."
	}
}

// IsCancellation reports whether the error stems from caller-initiated
// cancellation rather than a pipeline failure.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}
