package remote

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorKind string

const (
	KindTransport ErrorKind = "TRANSPORT"
	KindStatus    ErrorKind = "STATUS"
	KindDecode    ErrorKind = "DECODE"
	KindRequest   ErrorKind = "REQUEST"
)

// Error is returned by every Client call that fails.
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Err        error
	Stack      []byte
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: unexpected status %d", e.Kind, e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StackTrace() []byte {
	return e.Stack
}

func newError(kind ErrorKind, op string, err error) *Error {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(op).Stack()
	}
	return &Error{Kind: kind, Op: op, Err: err, Stack: stack}
}

func statusError(op string, code int) *Error {
	e := newError(KindStatus, op, nil)
	e.StatusCode = code
	return e
}
