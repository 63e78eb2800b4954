package errs

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// error codes used by the HTTP surface
const (
	CodeValidation = 1001
	CodeNotFound   = 1002
	CodeStorage    = 1003
)

var (
	ErrValidation = NewCodeError(CodeValidation, "invalid argument")
	ErrNotFound   = NewCodeError(CodeNotFound, "record not found")
	ErrStorage    = NewCodeError(CodeStorage, "storage error")
)

type CodeError struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Detail string `json:"detail,omitempty"`
}

func NewCodeError(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

func (e *CodeError) Error() string {
	if e.Detail == "" {
		return e.Msg
	}
	return e.Msg + ": " + e.Detail
}

func (e *CodeError) clone() *CodeError {
	return &CodeError{Code: e.Code, Msg: e.Msg, Detail: e.Detail}
}

// WithDetail returns a copy carrying extra detail text.
func (e *CodeError) WithDetail(detail string) *CodeError {
	c := e.clone()
	if c.Detail == "" {
		c.Detail = detail
	} else {
		c.Detail += ", " + detail
	}
	return c
}

// Wrap attaches a call stack to the coded error.
func (e *CodeError) Wrap() error {
	return errors.WithStack(e.clone())
}

// WrapMsg attaches detail plus a call stack; kv pairs are rendered key=value.
func (e *CodeError) WrapMsg(msg string, kv ...any) error {
	c := e.clone()
	if d := toString(msg, kv); d != "" {
		if c.Detail == "" {
			c.Detail = d
		} else {
			c.Detail += ", " + d
		}
	}
	return errors.WithStack(c)
}

func (e *CodeError) Is(err error) bool {
	var ce *CodeError
	if !stderrors.As(err, &ce) {
		return false
	}
	return ce.Code == e.Code
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code int) bool {
	var ce *CodeError
	if !stderrors.As(err, &ce) {
		return false
	}
	return ce.Code == code
}

// New creates a plain stack-carrying error.
func New(msg string) error {
	return errors.New(msg)
}

// WrapMsg wraps err with a message and key=value context.
func WrapMsg(err error, msg string, kv ...any) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, toString(msg, kv))
}

func toString(msg string, kv []any) string {
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprint(kv[i]))
		sb.WriteString("=")
		if i+1 < len(kv) {
			sb.WriteString(fmt.Sprint(kv[i+1]))
		}
	}
	return sb.String()
}
