package dnscli

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindProviderRejected
	KindMalformedResponse
	KindSigning
	KindEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindProviderRejected:
		return "provider rejected"
	case KindMalformedResponse:
		return "malformed response"
	case KindSigning:
		return "signing error"
	case KindEncoding:
		return "request encoding error"
	default:
		return "unknown error"
	}
}

// Error is returned by every provider call. Body holds the raw reply, when
// there was one, so a rejection can be diagnosed without re-running.
type Error struct {
	Kind   ErrorKind
	Action string
	Body   string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Action != "" {
		msg = fmt.Sprintf("%s: %s", e.Action, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s, response: %s", msg, e.Body)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind only, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrTransport         = &Error{Kind: KindTransport}
	ErrProviderRejected  = &Error{Kind: KindProviderRejected}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrSigning           = &Error{Kind: KindSigning}
	ErrEncoding          = &Error{Kind: KindEncoding}
)

var (
	ErrUnknownProvider   = errors.New("unimplemented provider")
	ErrMissingValue      = errors.New("missing one of the following arguments: --if or --value")
	ErrInvalidCredential = errors.New("credential must be in the form \"id,key\"")

	errEmptySecret = errors.New("empty secret key")
	errEmptyDate   = errors.New("empty signing date")
	errInvalidJSON = errors.New("reply is not valid JSON")
)

func malformed(action, body string, err error) error {
	return &Error{Kind: KindMalformedResponse, Action: action, Body: body, Err: err}
}
