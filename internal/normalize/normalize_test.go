package normalize

import (
	"testing"

	"github.com/skf-fest/refresko/internal/models"
)

func TestPaymentsNonSequenceInput(t *testing.T) {
	inputs := map[string]any{
		"nil":    nil,
		"string": "not a list",
		"number": 42.0,
		"object": map[string]any{"utrNo": "ABC12345"},
		"bool":   true,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			got := Payments(input)
			if len(got) != 0 {
				t.Errorf("Payments(%v) returned %d records, want 0", input, len(got))
			}
		})
	}
}

func TestPaymentsLengthAndDefaults(t *testing.T) {
	// Three malformed elements: empty object, non-object, object with junk.
	input := []any{
		map[string]any{},
		"garbage",
		map[string]any{"amount": "not-a-number", "status": ""},
	}

	got := Payments(input)
	if len(got) != len(input) {
		t.Fatalf("output length = %d, want %d", len(got), len(input))
	}

	for i, record := range got {
		if record.ID == "" || record.UTRNo == "" || record.StudentCode == "" ||
			record.StudentName == "" || record.Email == "" || record.College == "" ||
			record.Department == "" || record.Year == "" || record.Event == "" ||
			record.Status == "" || record.Date == "" || record.TransactionID == "" ||
			record.PaymentMethod == "" {
			t.Errorf("record %d has an empty canonical field: %+v", i, record)
		}
		if record.Amount != models.DefaultAmount {
			t.Errorf("record %d amount = %v, want default %v", i, record.Amount, float64(models.DefaultAmount))
		}
		if record.Status != models.StatusPending {
			t.Errorf("record %d status = %q, want pending", i, record.Status)
		}
	}

	// Positional id placeholder is 1-based.
	if got[0].ID != "PAY1" || got[2].ID != "PAY3" {
		t.Errorf("positional ids = %q, %q; want PAY1, PAY3", got[0].ID, got[2].ID)
	}
}

func TestPaymentsAliasPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		check func(t *testing.T, r models.PaymentRecord)
	}{
		{
			name: "utrNo wins over paymentUTR and transactionId",
			input: map[string]any{
				"utrNo":         "CANONICAL1",
				"paymentUTR":    "LEGACY111",
				"transactionId": "TXN123456",
			},
			check: func(t *testing.T, r models.PaymentRecord) {
				if r.UTRNo != "CANONICAL1" {
					t.Errorf("UTRNo = %q, want CANONICAL1", r.UTRNo)
				}
			},
		},
		{
			name:  "paymentUTR fallback",
			input: map[string]any{"paymentUTR": "LEGACY111", "transactionId": "TXN123456"},
			check: func(t *testing.T, r models.PaymentRecord) {
				if r.UTRNo != "LEGACY111" {
					t.Errorf("UTRNo = %q, want LEGACY111", r.UTRNo)
				}
			},
		},
		{
			name:  "transactionId is the last utr fallback",
			input: map[string]any{"transactionId": "TXN123456"},
			check: func(t *testing.T, r models.PaymentRecord) {
				if r.UTRNo != "TXN123456" {
					t.Errorf("UTRNo = %q, want TXN123456", r.UTRNo)
				}
			},
		},
		{
			name:  "studentId legacy alias",
			input: map[string]any{"studentId": "STU042"},
			check: func(t *testing.T, r models.PaymentRecord) {
				if r.StudentCode != "STU042" {
					t.Errorf("StudentCode = %q, want STU042", r.StudentCode)
				}
			},
		},
		{
			name:  "name legacy alias",
			input: map[string]any{"name": "Asha"},
			check: func(t *testing.T, r models.PaymentRecord) {
				if r.StudentName != "Asha" {
					t.Errorf("StudentName = %q, want Asha", r.StudentName)
				}
			},
		},
		{
			name:  "paymentScreenshot legacy alias",
			input: map[string]any{"paymentScreenshot": "data:image/png;base64,xyz"},
			check: func(t *testing.T, r models.PaymentRecord) {
				if r.Screenshot != "data:image/png;base64,xyz" {
					t.Errorf("Screenshot = %q", r.Screenshot)
				}
			},
		},
		{
			name:  "empty string does not shadow a later alias",
			input: map[string]any{"utrNo": "", "paymentUTR": "LEGACY111"},
			check: func(t *testing.T, r models.PaymentRecord) {
				if r.UTRNo != "LEGACY111" {
					t.Errorf("UTRNo = %q, want LEGACY111", r.UTRNo)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Payments([]any{tt.input})
			if len(got) != 1 {
				t.Fatalf("got %d records, want 1", len(got))
			}
			tt.check(t, got[0])
		})
	}
}

func TestPaymentsAmountCoercion(t *testing.T) {
	tests := []struct {
		name   string
		amount any
		want   float64
	}{
		{"number passes through", 750.0, 750},
		{"numeric string parses", "250", 250},
		{"zero falls back", 0.0, models.DefaultAmount},
		{"garbage falls back", "five hundred", models.DefaultAmount},
		{"absent falls back", nil, models.DefaultAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]any{}
			if tt.amount != nil {
				input["amount"] = tt.amount
			}
			got := Payments([]any{input})
			if got[0].Amount != tt.want {
				t.Errorf("amount = %v, want %v", got[0].Amount, tt.want)
			}
		})
	}
}

func TestPaymentsJSON(t *testing.T) {
	t.Run("malformed JSON is empty", func(t *testing.T) {
		if got := PaymentsJSON([]byte("{broken")); len(got) != 0 {
			t.Errorf("got %d records, want 0", len(got))
		}
	})
	t.Run("valid list round trips", func(t *testing.T) {
		raw := []byte(`[{"utrNo":"ABC12345","studentCode":"STU001","status":"completed"}]`)
		got := PaymentsJSON(raw)
		if len(got) != 1 {
			t.Fatalf("got %d records, want 1", len(got))
		}
		if got[0].UTRNo != "ABC12345" || got[0].Status != models.StatusCompleted {
			t.Errorf("unexpected record: %+v", got[0])
		}
	})
}
