// Package normalize folds heterogeneous and legacy stored payment shapes
// into the canonical models.PaymentRecord.
//
// The functions here are pure and total: any input yields a well-formed
// result, malformed elements degrade to defaults, and nothing panics. Every
// read path goes through this package before records reach a view.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/skf-fest/refresko/internal/models"
)

// paymentAliases lists, per canonical field, the accepted source keys in
// priority order: first present, non-empty value wins. Adding a new legacy
// alias is a data change here, not new code.
var paymentAliases = map[string][]string{
	"id":             {"id"},
	"utrNo":          {"utrNo", "paymentUTR", "transactionId"},
	"studentCode":    {"studentCode", "studentId"},
	"studentName":    {"studentName", "name"},
	"email":          {"email"},
	"college":        {"college"},
	"department":     {"department"},
	"year":           {"year"},
	"event":          {"event"},
	"status":         {"status"},
	"date":           {"date"},
	"transactionId":  {"transactionId"},
	"paymentMethod":  {"paymentMethod"},
	"screenshot":     {"screenshot", "paymentScreenshot"},
	"screenshotName": {"screenshotName", "paymentScreenshotName"},
}

// Payments converts any decoded JSON value into canonical records.
// Non-sequence input yields an empty slice; sequence input yields exactly
// one record per element, every field populated.
func Payments(v any) []models.PaymentRecord {
	list, ok := v.([]any)
	if !ok {
		return []models.PaymentRecord{}
	}

	now := time.Now().Format(time.RFC3339)
	out := make([]models.PaymentRecord, len(list))
	for i, element := range list {
		// Non-object elements fall through with nil fields and pick up
		// every default; the output length still matches the input.
		fields, _ := element.(map[string]any)
		out[i] = one(fields, i+1, now)
	}
	return out
}

// PaymentsJSON decodes raw JSON and normalizes it. Malformed JSON is
// equivalent to absence: the result is empty.
func PaymentsJSON(raw []byte) []models.PaymentRecord {
	if len(raw) == 0 {
		return []models.PaymentRecord{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return []models.PaymentRecord{}
	}
	return Payments(v)
}

func one(fields map[string]any, position int, now string) models.PaymentRecord {
	pick := func(field, fallback string) string {
		for _, alias := range paymentAliases[field] {
			if s := stringValue(fields[alias]); s != "" {
				return s
			}
		}
		return fallback
	}

	status := models.PaymentStatus(pick("status", string(models.StatusPending)))

	return models.PaymentRecord{
		ID:             pick("id", fmt.Sprintf("PAY%d", position)),
		UTRNo:          pick("utrNo", models.UnknownField),
		StudentCode:    pick("studentCode", models.UnknownField),
		StudentName:    pick("studentName", models.UnknownField),
		Email:          pick("email", models.UnknownField),
		College:        pick("college", models.UnknownField),
		Department:     pick("department", models.UnknownField),
		Year:           pick("year", models.UnknownField),
		Event:          pick("event", models.DefaultEvent),
		Amount:         amountValue(fields["amount"]),
		Status:         status,
		Date:           pick("date", now),
		TransactionID:  pick("transactionId", models.UnknownField),
		PaymentMethod:  pick("paymentMethod", models.DefaultPaymentMethod),
		Screenshot:     pick("screenshot", ""),
		ScreenshotName: pick("screenshotName", ""),
	}
}

// stringValue coerces a decoded JSON scalar to its string form. Empty
// strings, nulls, objects and false all coerce to "", which the caller
// treats as absent.
func stringValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == 0 {
			return ""
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		if value {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

// amountValue coerces an amount to a number. Failed coercion and zero both
// fall back to the fixed registration fee.
func amountValue(v any) float64 {
	switch value := v.(type) {
	case float64:
		if value != 0 {
			return value
		}
	case string:
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed != 0 {
			return parsed
		}
	}
	return models.DefaultAmount
}
