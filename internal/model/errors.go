package model

import "fmt"

// Kind classifies a failure of a single user action.
type Kind int

const (
	KindMissingCredential Kind = iota + 1
	KindDecode
	KindRead
	KindUnsupportedFile
	KindEmptyModelResponse
	KindServiceCallFailed
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "MissingCredential"
	case KindDecode:
		return "DecodeError"
	case KindRead:
		return "ReadError"
	case KindUnsupportedFile:
		return "UnsupportedFile"
	case KindEmptyModelResponse:
		return "EmptyModelResponse"
	case KindServiceCallFailed:
		return "ServiceCallFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the typed failure returned by the assistant and the session.
// Two Errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrMissingCredential  = &Error{Kind: KindMissingCredential, Message: "API key not found"}
	ErrDecode             = &Error{Kind: KindDecode, Message: "unable to decode file"}
	ErrRead               = &Error{Kind: KindRead, Message: "error reading file"}
	ErrUnsupportedFile    = &Error{Kind: KindUnsupportedFile, Message: "unsupported file type"}
	ErrEmptyModelResponse = &Error{Kind: KindEmptyModelResponse, Message: "model returned no content"}
	ErrServiceCallFailed  = &Error{Kind: KindServiceCallFailed, Message: "model call failed"}
)

func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
