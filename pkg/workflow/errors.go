package workflow

import "errors"

// ValidationError reports malformed or incomplete input to Submit or
// RecordStep. Nothing is applied; the caller should re-prompt.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// InvalidTransitionError reports an action attempted on a document whose
// state no longer matches the actor's assumption: already finalized, the
// actor no longer holds the obligation, or a stale version was read.
// Surfaced to the actor as "this document has already been processed".
type InvalidTransitionError struct {
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return "invalid transition: " + e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var te *InvalidTransitionError
	return errors.As(err, &te)
}
