package handler

// OpError wraps a failed operation with the fixed, user-facing fallback
// message for that operation. The message is used only when the CRM API
// did not return one of its own.
type OpError struct {
	Err      error
	Fallback string
}

func (e *OpError) Error() string {
	return e.Fallback + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opFailed(err error, fallback string) error {
	return &OpError{Err: err, Fallback: fallback}
}
