package storage

// Store keys shared with the view layer. These names are the binding surface
// to data written by earlier releases, so they must not change.
const (
	// Session flags, string-encoded booleans ("true" or absent).
	KeyIsAuthenticated    = "isAuthenticated"
	KeyProfileCompleted   = "profileCompleted"
	KeyAdminAuthenticated = "adminAuthenticated"

	// Last successful login identities.
	KeyLoginEmail      = "loginEmail"
	KeyAdminLoginEmail = "adminLoginEmail"

	// JSON-encoded entities.
	KeyStudentProfile     = "studentProfile"
	KeyAdminAccounts      = "adminAccounts"
	KeyUsedUTRRegistry    = "usedUtrRegistry"
	KeyPaymentSubmissions = "paymentSubmissions"
	KeyAmountOverrides    = "paymentAmountOverrides"

	// Legacy single-submission keys. Written for compatibility after each
	// successful submission, read as a fallback when the list is empty.
	KeyPaymentCompleted      = "paymentCompleted"
	KeyPaymentUTR            = "paymentUTR"
	KeyTransactionID         = "transactionId"
	KeyPaymentScreenshotName = "paymentScreenshotName"

	// ScreenshotKeyPrefix + <UTR> holds the raw image payload, best effort.
	ScreenshotKeyPrefix = "paymentScreenshot:"
)

// FlagTrue is the stored representation of a set boolean flag.
const FlagTrue = "true"

// ScreenshotKey returns the store key for a normalized UTR's image payload.
func ScreenshotKey(utr string) string {
	return ScreenshotKeyPrefix + utr
}
