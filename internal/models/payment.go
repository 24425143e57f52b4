package models

// PaymentStatus is the review state of a submission. Participants only ever
// create pending records; the admin review flow moves them to completed.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
)

// Defaults applied during normalization. Absent or invalid source fields are
// replaced by these, never left empty.
const (
	// DefaultEvent is the event name stamped on registration payments.
	DefaultEvent = "Refresko 2026 Registration"

	// DefaultAmount is the fixed registration fee in rupees.
	DefaultAmount = 500

	// DefaultPaymentMethod is assumed when a record predates the method field.
	DefaultPaymentMethod = "UPI"

	// UnknownField is the placeholder for string fields with no usable source.
	UnknownField = "N/A"
)

// PaymentRecord represents one payment-proof submission in canonical form.
// This is the shape the admin views consume; anything read from the store
// passes through normalize.Payments first, so every field is populated.
type PaymentRecord struct {
	// ID is the unique identifier for the submission (PAY-prefixed).
	ID string `json:"id"`

	// UTRNo is the participant-supplied Unique Transaction Reference,
	// uppercase alphanumeric, 8-30 characters, unique per student.
	UTRNo string `json:"utrNo"`

	// StudentCode identifies the submitting student.
	StudentCode string `json:"studentCode"`

	StudentName string `json:"studentName"`
	Email       string `json:"email"`
	College     string `json:"college"`
	Department  string `json:"department"`
	Year        string `json:"year"`

	// Event is the event this payment registers for.
	Event string `json:"event"`

	// Amount is the payment amount. The submission flow always charges the
	// fixed registration fee; admin views may display overridden totals.
	Amount float64 `json:"amount"`

	// Status starts pending and is mutated only by admin review.
	Status PaymentStatus `json:"status"`

	// Date is the submission time in RFC 3339 form.
	Date string `json:"date"`

	// TransactionID is the synthesized TXN token for this submission.
	TransactionID string `json:"transactionId"`

	PaymentMethod string `json:"paymentMethod"`

	// Screenshot is the embedded proof image payload, if small enough to
	// have been stored inline. May be empty; the full payload lives under
	// its own store key.
	Screenshot string `json:"screenshot,omitempty"`

	// ScreenshotName is the display name of the uploaded proof image.
	ScreenshotName string `json:"screenshotName"`
}
