// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable signals a network-level failure reaching the
// homework API. The poll loop treats it as recoverable and retries after
// the configured interval.
var ErrServiceUnavailable = errors.New("сервис недоступен")

// BadResponseError is returned when the API answers with a non-200 status.
type BadResponseError struct {
	StatusCode int
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf("при запросе к эндпоинту вернулся код ответа %d", e.StatusCode)
}

// MalformedResponseError is returned when the response body could not be
// parsed as JSON at all.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("ответ API не является корректным JSON: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// MissingFieldError names a required field absent from the API response.
type MissingFieldError string

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("отсутствует ключ %q", string(e))
}

// TypeMismatchError is returned when the response, or one of its fields,
// has the wrong JSON type. An empty Field means the response body itself.
type TypeMismatchError struct {
	Field string
	Want  string
}

func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("ответ API не является %s", e.Want)
	}
	return fmt.Sprintf("поле %q не является %s", e.Field, e.Want)
}

// UnknownStatusError is returned when a homework record carries a status
// outside the recognized vocabulary.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("неизвестный статус проверки работы: %q", e.Status)
}
