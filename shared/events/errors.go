package events

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies saga failures
type Kind string

const (
	KindValidation           Kind = "validation"
	KindDuplicateTransaction Kind = "duplicate_transaction"
	KindNotFound             Kind = "not_found"
	KindDomainRule           Kind = "domain_rule"
	KindUnknown              Kind = "unknown"
)

// Error is a saga-domain failure carrying a human readable message.
// The message is what ends up in the envelope history, so it is kept free
// of wrapping prefixes.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so the sentinels below can be
// used with errors.Is regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation           = &Error{Kind: KindValidation, Message: "validation error"}
	ErrDuplicateTransaction = &Error{Kind: KindDuplicateTransaction, Message: "duplicate transaction"}
	ErrNotFound             = &Error{Kind: KindNotFound, Message: "not found"}
	ErrDomainRule           = &Error{Kind: KindDomainRule, Message: "domain rule violated"}
)

// NewValidationError reports a malformed or incomplete envelope
func NewValidationError(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewDuplicateTransactionError reports a replayed (orderId, transactionId)
func NewDuplicateTransactionError(format string, args ...interface{}) error {
	return &Error{Kind: KindDuplicateTransaction, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a missing resource, routing row or snapshot
func NewNotFoundError(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewDomainRuleError reports a business rule rejection
func NewDomainRuleError(format string, args ...interface{}) error {
	return &Error{Kind: KindDomainRule, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in the chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
