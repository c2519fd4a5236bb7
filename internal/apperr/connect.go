package apperr

import (
	"errors"

	"connectrpc.com/connect"
)

// KindHeader carries the error kind in connect error metadata.
const KindHeader = "Error-Kind"

var codes = map[Kind]connect.Code{
	KindNotFound:      connect.CodeNotFound,
	KindStateConflict: connect.CodeFailedPrecondition,
	KindValidation:    connect.CodeInvalidArgument,
	KindUpstream:      connect.CodeUnavailable,
	KindRateLimited:   connect.CodeResourceExhausted,
	KindInternal:      connect.CodeInternal,
}

// ToConnect converts err to a *connect.Error. Errors that are already
// connect errors pass through. Internal errors keep their cause out of
// the message.
func ToConnect(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	kind := KindOf(err)
	msg := "internal error"
	var appErr *Error
	if kind != KindInternal && errors.As(err, &appErr) {
		msg = appErr.Message
		if appErr.Detail != "" && kind != KindUpstream {
			msg += ": " + appErr.Detail
		}
	}

	out := connect.NewError(codes[kind], errors.New(msg))
	out.Meta().Set(KindHeader, string(kind))
	return out
}

// KindFromConnect recovers the kind sent by ToConnect.
func KindFromConnect(err error) Kind {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return KindOf(err)
	}
	if k := connectErr.Meta().Get(KindHeader); k != "" {
		return Kind(k)
	}
	for kind, code := range codes {
		if code == connectErr.Code() {
			return kind
		}
	}
	return KindInternal
}
