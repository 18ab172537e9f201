package model

import (
	"strings"
	"testing"
)

func validClientArgs() [6]string {
	return [6]string{"Acme", "Acme Corp", "Springfield", "J. Doe", "555-0100", "billing@acme.test"}
}

func TestParseClientForm(t *testing.T) {
	a := validClientArgs()
	out, err := ParseClientForm(a[0], a[1], a[2], a[3], a[4], a[5])
	if err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if out.ClientName != "Acme" || out.Email != "billing@acme.test" {
		t.Errorf("unexpected payload: %+v", out)
	}
}

func TestParseClientFormRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *[6]string)
		wantSub string
	}{
		{"missing client name", func(a *[6]string) { a[0] = "" }, "client name is required"},
		{"whitespace company", func(a *[6]string) { a[1] = "   " }, "company name is required"},
		{"oversized city", func(a *[6]string) { a[2] = strings.Repeat("x", MaxTextLen+1) }, "at most 255"},
		{"oversized phone", func(a *[6]string) { a[4] = strings.Repeat("9", MaxPhoneLen+1) }, "at most 50"},
		{"email without at sign", func(a *[6]string) { a[5] = "not-an-email" }, "not a valid address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validClientArgs()
			tt.mutate(&a)
			_, err := ParseClientForm(a[0], a[1], a[2], a[3], a[4], a[5])
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseClientFormCountsCharactersNotBytes(t *testing.T) {
	a := validClientArgs()
	a[0] = strings.Repeat("é", MaxTextLen)
	if _, err := ParseClientForm(a[0], a[1], a[2], a[3], a[4], a[5]); err != nil {
		t.Errorf("255-character multibyte name rejected: %v", err)
	}

	a[0] = strings.Repeat("é", MaxTextLen+1)
	if _, err := ParseClientForm(a[0], a[1], a[2], a[3], a[4], a[5]); err == nil {
		t.Error("256-character name accepted")
	}
}

func TestParseCaseForm(t *testing.T) {
	out, err := ParseCaseForm(7, "INV-1", "1234.50", "2025-03-01", "2025-04-01", StatusNew, "")
	if err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if out.ClientID != 7 {
		t.Errorf("client id = %d, want 7", out.ClientID)
	}
	if out.InvoiceAmount != 1234.50 {
		t.Errorf("amount = %v, want 1234.50", out.InvoiceAmount)
	}
	if out.InvoiceDate.String() != "2025-03-01" || out.DueDate.String() != "2025-04-01" {
		t.Errorf("dates = %s / %s", out.InvoiceDate, out.DueDate)
	}
	if out.LastFollowUpNotes != nil {
		t.Error("blank notes should produce a nil pointer")
	}
}

func TestParseCaseFormNotesPointer(t *testing.T) {
	out, err := ParseCaseForm(7, "INV-1", "10", "2025-03-01", "2025-04-01", StatusInFollowUp, "called them")
	if err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if out.LastFollowUpNotes == nil || *out.LastFollowUpNotes != "called them" {
		t.Errorf("notes = %v", out.LastFollowUpNotes)
	}
}

func TestParseCaseFormRejects(t *testing.T) {
	tests := []struct {
		name     string
		clientID int64
		number   string
		amount   string
		invDate  string
		dueDate  string
		status   Status
	}{
		{"no client selected", 0, "INV-1", "10", "2025-03-01", "2025-04-01", StatusNew},
		{"missing invoice number", 7, "", "10", "2025-03-01", "2025-04-01", StatusNew},
		{"oversized invoice number", 7, strings.Repeat("A", MaxInvoiceLen+1), "10", "2025-03-01", "2025-04-01", StatusNew},
		{"non-numeric amount", 7, "INV-1", "ten dollars", "2025-03-01", "2025-04-01", StatusNew},
		{"zero amount", 7, "INV-1", "0", "2025-03-01", "2025-04-01", StatusNew},
		{"below minimum amount", 7, "INV-1", "0.001", "2025-03-01", "2025-04-01", StatusNew},
		{"bad invoice date", 7, "INV-1", "10", "03/01/2025", "2025-04-01", StatusNew},
		{"bad due date", 7, "INV-1", "10", "2025-03-01", "April 1st", StatusNew},
		{"unknown status", 7, "INV-1", "10", "2025-03-01", "2025-04-01", Status("Escalated")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCaseForm(tt.clientID, tt.number, tt.amount, tt.invDate, tt.dueDate, tt.status, "")
			if err == nil {
				t.Fatal("expected error, got none")
			}
		})
	}
}

func TestParseCaseFormAcceptsMinimumAmount(t *testing.T) {
	out, err := ParseCaseForm(1, "INV-1", "0.01", "2025-03-01", "2025-04-01", StatusNew, "")
	if err != nil {
		t.Fatalf("minimum amount rejected: %v", err)
	}
	if out.InvoiceAmount != MinInvoiceAmount {
		t.Errorf("amount = %v", out.InvoiceAmount)
	}
}
