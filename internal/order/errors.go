package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotStarted          = errors.New("order not started")
	ErrUnexpectedStep      = errors.New("unexpected input for current step")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateSelection  = errors.New("color already selected")
	ErrIncompleteSelection = errors.New("color selection incomplete")
	ErrSubmissionFailed    = errors.New("order submission failed")
)

// RejectionError reports why an operation was refused. The session is left
// exactly as it was. Kind is one of the sentinel errors above.
type RejectionError struct {
	Kind   error
	Step   Step
	Color  string
	Detail string
}

func (e *RejectionError) Error() string {
	msg := e.Kind.Error()
	if e.Step != "" {
		msg = fmt.Sprintf("%s (step %s)", msg, e.Step)
	}
	if e.Color != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Color)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

func (e *RejectionError) Unwrap() error {
	return e.Kind
}

func notStarted() error {
	return &RejectionError{Kind: ErrNotStarted}
}

func invalidInput(step Step, detail string) error {
	return &RejectionError{Kind: ErrInvalidInput, Step: step, Detail: detail}
}

// IsRejection reports whether err is a refused transition rather than an
// infrastructure failure.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}
