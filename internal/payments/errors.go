package payments

import "errors"

// Validation failures surfaced by Submit. All of them are recovered at the
// workflow boundary: nothing here ever propagates as a panic or a crash.
var (
	ErrMissingScreenshot = errors.New("missing payment screenshot")
	ErrMissingUTR        = errors.New("missing utr number")
	ErrInvalidUTRFormat  = errors.New("invalid utr format")
	ErrDuplicateUTR      = errors.New("utr already used by another student")

	// ErrSubmissionInFlight is returned when Submit is called while a
	// prior submission has not settled yet.
	ErrSubmissionInFlight = errors.New("submission already in progress")
)

// UserMessage maps a submission error to the single human-readable message
// the form displays. Unknown errors get a generic failure line.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingScreenshot):
		return "Please upload payment screenshot before submitting"
	case errors.Is(err, ErrMissingUTR):
		return "Please enter UTR number"
	case errors.Is(err, ErrInvalidUTRFormat):
		return "UTR must be 8-30 characters and contain only letters and numbers"
	case errors.Is(err, ErrDuplicateUTR):
		return "This UTR number is already used by another user. Please check and enter a unique UTR."
	case errors.Is(err, ErrSubmissionInFlight):
		return "A payment is already being processed. Please wait."
	default:
		return "Payment submission failed. Please try again."
	}
}
