package chat

import (
	"errors"
)

// Error kinds. Every error returned by Client.Send wraps exactly one of them,
// so callers can branch with errors.Is.
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrTransport      = errors.New("transport error")
	ErrServer         = errors.New("server error")
	ErrMalformedReply = errors.New("malformed reply")
	ErrBusy           = errors.New("a message is already in flight")
)

// Error is a failed conversation turn. Message is what the server said when
// it said anything, otherwise a generic description.
type Error struct {
	Kind       error
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage is the localized text shown in the error bubble for err.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "El mensaje no puede estar vacío"
	case errors.Is(err, ErrBusy):
		return "Esperá la respuesta anterior antes de enviar otro mensaje"
	default:
		return "❌ Error al procesar tu mensaje"
	}
}
