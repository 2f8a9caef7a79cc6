package models

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks on iteration failures.
var (
	ErrConnection        = errors.New("connection failure")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
	ErrMissingField      = errors.New("missing field")
	ErrUnknownVerdict    = errors.New("unknown verdict")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
)

// ConnectionError is a transport-level failure talking to the API.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("ошибка при запросе к API по адресу %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// UnexpectedStatusError carries a non-200 HTTP status.
type UnexpectedStatusError struct {
	Code int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("получен статус: %d вместо ожидаемого 200", e.Code)
}

func (e *UnexpectedStatusError) Is(target error) bool { return target == ErrUnexpectedStatus }

// MalformedKind says what part of a payload had the wrong shape.
type MalformedKind int

const (
	KindInvalidJSON MalformedKind = iota
	KindTopLevelType
	KindFieldType
)

func (k MalformedKind) String() string {
	switch k {
	case KindInvalidJSON:
		return "invalid json"
	case KindTopLevelType:
		return "wrong top-level type"
	case KindFieldType:
		return "wrong field type"
	default:
		return "unknown"
	}
}

type MalformedResponseError struct {
	Kind  MalformedKind
	Field string // set for KindFieldType
	Err   error
}

func (e *MalformedResponseError) Error() string {
	msg := "некорректный ответ API (" + e.Kind.String()
	if e.Field != "" {
		msg += ": " + e.Field
	}
	msg += ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// MissingFieldError names a required key absent from a response or record.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("отсутствует ключ %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

type UnknownVerdictError struct {
	Status string
}

func (e *UnknownVerdictError) Error() string {
	return fmt.Sprintf("неизвестный статус домашней работы: %q", e.Status)
}

func (e *UnknownVerdictError) Is(target error) bool { return target == ErrUnknownVerdict }
