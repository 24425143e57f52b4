// Package models defines the core domain models for the Refresko
// registration state layer.
//
// # Models
//
//   - StudentProfile: the authenticated participant's profile, written once
//     at profile setup
//   - PaymentRecord: one payment-proof submission in its canonical shape
//   - AdminAccount: a dynamically provisioned admin login
//
// # Design Principles
//
// 1. **Canonical shapes**: every PaymentRecord field is non-empty after
// normalization; legacy shapes are folded in at read time, never stored back
// 2. **Avoid circular references**: records carry studentCode strings, not
// profile pointers
// 3. **Store-format stability**: JSON field names match the persisted keys
// the view layer already reads, so old data stays readable
package models
