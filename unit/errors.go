package unit

import (
	"errors"
	"fmt"

	"xdao.co/reflector/addr"
)

// ErrMessagesEmpty rejects a reflect request with no messages. An empty
// reflection carries no signal and would otherwise silently succeed.
var ErrMessagesEmpty = errors.New("unit: messages are empty")

// NotCurrentOwnerError rejects a mutation attempted by anyone but the stored
// owner. Both identities are carried for auditability.
type NotCurrentOwnerError struct {
	Expected addr.Canonical
	Actual   addr.Canonical
}

func (e *NotCurrentOwnerError) Error() string {
	return fmt.Sprintf("unit: not current owner: expected %s, actual %s", e.Expected, e.Actual)
}

// IsNotCurrentOwner reports whether err is (or wraps) a NotCurrentOwnerError.
func IsNotCurrentOwner(err error) bool {
	var e *NotCurrentOwnerError
	return errors.As(err, &e)
}

// authorize is the ownership guard: a pure comparison of the caller's
// canonical identity against the stored owner. It must run before any
// owner-gated mutation.
func authorize(caller, owner addr.Canonical) error {
	if !caller.Equal(owner) {
		return &NotCurrentOwnerError{Expected: owner, Actual: caller}
	}
	return nil
}
