package services

import "errors"

var (
	ErrFetch  = errors.New("qr image fetch failed")
	ErrInsert = errors.New("qr image insert failed")
	ErrBusy   = errors.New("qr generation already in progress")
)

// SubmitError is a runtime failure of a submission. Op is one of the
// sentinels above; Message is localized for display.
type SubmitError struct {
	Op      error
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Op}
	}
	return []error{e.Op, e.Err}
}
