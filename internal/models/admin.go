package models

// AdminAccountActive is the status an AdminAccount must carry to log in.
const AdminAccountActive = "active"

// AdminAccount is a dynamically provisioned admin login, stored as a JSON
// list under the adminAccounts key. Passwords may be stored either as plain
// text (legacy seed data) or as a bcrypt hash.
type AdminAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Status gates login; only "active" accounts can authenticate.
	Status string `json:"status"`
}

// AmountOverrides maps event id -> custom amount for one student. Super-admin
// tooling writes these; they only affect displayed totals in management
// views, never the fee charged by the submission flow.
type AmountOverrides map[string]float64
