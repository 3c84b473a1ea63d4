package entities

import "net/http"

// AppErrorType representa os tipos de erro da aplicação.
type AppErrorType int

// ErrDatabase represents a database error.
const (
	ErrDatabase AppErrorType = iota + 1001
	ErrRepository
	ErrUsecase
	ErrEntity
	ErrModel
	ErrService
	ErrMiddleware
	ErrRoot
	ErrEnvironment
	ErrNotFound
	ErrInvalidToken
	ErrInvalidCredentials
	ErrUnauthorized
	ErrConflict

	// ErrValidation is a caller error, never retried (spec §7).
	ErrValidation
	// ErrInsufficientBalance is raised by the ledger when a debit exceeds the available balance.
	ErrInsufficientBalance
	// ErrUpstreamUnavailable covers tracker 5xx/timeout and a null video probe; retried with backoff then DLQ.
	ErrUpstreamUnavailable
	// ErrPoison marks a malformed message; moved to DLQ immediately, never retried.
	ErrPoison
	// ErrConfigurationError marks a violated fixed-campaign pool invariant; halts new assignments only.
	ErrConfigurationError
	// ErrFatal is an unexpected error; DLQ with full stack, alert.
	ErrFatal
)

// AppErrorTypeToString maps AppErrorType to string representations.
var AppErrorTypeToString = map[AppErrorType]string{
	ErrDatabase:           "Erro de banco de dados",
	ErrRepository:         "Erro de repositório",
	ErrUsecase:            "Erro de caso de uso",
	ErrEntity:             "Erro de entidade",
	ErrModel:              "Erro de modelo",
	ErrService:            "Erro de serviço",
	ErrMiddleware:         "Erro de middleware",
	ErrRoot:               "Erro raiz",
	ErrEnvironment:        "Erro de ambiente",
	ErrNotFound:           "Recurso não encontrado",
	ErrInvalidToken:       "Token inválido",
	ErrInvalidCredentials: "Credenciais inválidas",
	ErrUnauthorized:       "Não autorizado",
	ErrConflict:           "Conflito",

	ErrValidation:          "validation failed",
	ErrInsufficientBalance: "insufficient balance",
	ErrUpstreamUnavailable: "upstream unavailable",
	ErrPoison:              "malformed message",
	ErrConfigurationError:  "configuration invariant violated",
	ErrFatal:               "fatal error",
}

// AppErrorTypeToHTTP maps AppErrorType to HTTP status codes.
var AppErrorTypeToHTTP = map[AppErrorType]int{
	ErrDatabase:           http.StatusInternalServerError,
	ErrRepository:         http.StatusInternalServerError,
	ErrUsecase:            http.StatusInternalServerError,
	ErrEntity:             http.StatusBadRequest,
	ErrModel:              http.StatusBadRequest,
	ErrService:            http.StatusInternalServerError,
	ErrMiddleware:         http.StatusInternalServerError,
	ErrRoot:               http.StatusInternalServerError,
	ErrEnvironment:        http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrConflict:           http.StatusConflict,

	ErrValidation:          http.StatusBadRequest,
	ErrInsufficientBalance: http.StatusPaymentRequired,
	ErrUpstreamUnavailable: http.StatusBadGateway,
	ErrPoison:              http.StatusUnprocessableEntity,
	ErrConfigurationError:  http.StatusServiceUnavailable,
	ErrFatal:               http.StatusInternalServerError,
}

// Retryable reports whether an error of this type should be retried by a bus consumer (spec §7).
func (t AppErrorType) Retryable() bool {
	switch t {
	case ErrUpstreamUnavailable, ErrConflict, ErrDatabase:
		return true
	default:
		return false
	}
}

// String renders the error kind's canonical name, used as `errorKind` in DLQ
// failure metadata (spec §6.1).
func (t AppErrorType) String() string {
	if s, ok := AppErrorTypeToString[t]; ok {
		return s
	}
	return "unknown"
}
