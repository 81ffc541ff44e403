// Package apperr defines the error taxonomy shared by the generation gateway,
// the workflow orchestrator and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers never have to inspect messages.
type Kind string

const (
	Invalid           Kind = "invalid"
	NotFound          Kind = "not_found"
	Unauthorized      Kind = "unauthorized"
	Conflict          Kind = "conflict"
	Locked            Kind = "locked"
	Credential        Kind = "credential"
	MalformedResponse Kind = "malformed_response"
	NoImageGenerated  Kind = "no_image_generated"
	Generation        Kind = "generation"
	Internal          Kind = "internal"
)

// AppError carries a Kind, a message safe to show to the user and the
// underlying cause for logs.
type AppError struct {
	Kind      Kind
	Op        string
	PublicMsg string
	Fields    map[string]string
	Err       error
}

func (e *AppError) Error() string {
	prefix := string(e.Kind)
	if e.Op != "" {
		prefix = e.Op + ": " + prefix
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	if e.PublicMsg != "" {
		return prefix + ": " + e.PublicMsg
	}
	return prefix
}

func (e *AppError) Unwrap() error { return e.Err }

// E builds an AppError for operation op.
func E(kind Kind, op string, err error) *AppError {
	return &AppError{Kind: kind, Op: op, Err: err}
}

func InvalidErr(publicMsg string, fields map[string]string) *AppError {
	return &AppError{Kind: Invalid, PublicMsg: publicMsg, Fields: fields}
}

func NotFoundErr(publicMsg string) *AppError {
	return &AppError{Kind: NotFound, PublicMsg: publicMsg}
}

func UnauthorizedErr(publicMsg string) *AppError {
	return &AppError{Kind: Unauthorized, PublicMsg: publicMsg}
}

func ConflictErr(publicMsg string) *AppError {
	return &AppError{Kind: Conflict, PublicMsg: publicMsg}
}

func LockedErr(publicMsg string) *AppError {
	return &AppError{Kind: Locked, PublicMsg: publicMsg}
}

// Wrap marks an unexpected error as internal.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: Internal, Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the kind of err, Internal for foreign errors and "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Invalid:
		return http.StatusBadRequest
	case Unauthorized, Credential:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Locked:
		return http.StatusLocked
	case MalformedResponse, NoImageGenerated, Generation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

const (
	msgCredential = "Sua chave de API é inválida ou não tem permissão. Por favor, selecione uma chave de API válida de um projeto com faturamento ativado para continuar."
	msgInternal   = "Ocorreu um erro inesperado."
)

// PublicMessage returns the text shown to the user for err.
func PublicMessage(err error) string {
	ae, ok := As(err)
	if !ok {
		return msgInternal
	}
	if ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	switch ae.Kind {
	case Credential:
		return msgCredential
	case MalformedResponse, NoImageGenerated, Generation:
		if ae.Op != "" {
			return fmt.Sprintf("Falha ao %s. Verifique o console para mais detalhes.", ae.Op)
		}
		return "Falha na geração com IA."
	}
	return msgInternal
}
