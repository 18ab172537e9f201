package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-03-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"2025-03-01"` {
		t.Errorf("marshaled = %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip changed value: %v != %v", back, d)
	}
}

func TestDateRejectsOtherLayouts(t *testing.T) {
	for _, s := range []string{"03/01/2025", "2025-3-1", "March 1, 2025", ""} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) accepted", s)
		}
	}
}

func TestNewDate(t *testing.T) {
	d := NewDate(2025, time.April, 9)
	if d.String() != "2025-04-09" {
		t.Errorf("String() = %s", d.String())
	}
}

func TestTimestampDecodesBackendFormats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		// Naive ISO-8601 as the backend emits it.
		{`"2025-08-31T12:00:00"`, time.Date(2025, time.August, 31, 12, 0, 0, 0, time.UTC)},
		// Naive with microseconds.
		{`"2025-08-31T12:00:00.123456"`, time.Date(2025, time.August, 31, 12, 0, 0, 123456000, time.UTC)},
		// RFC 3339 stays accepted.
		{`"2025-08-31T12:00:00Z"`, time.Date(2025, time.August, 31, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.in, err)
			continue
		}
		if !ts.Equal(tt.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, ts, tt.want)
		}
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil {
		t.Errorf("Unmarshal(null): %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("null decoded to %v", ts)
	}

	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("garbage timestamp accepted")
	}
}

func TestTimestampMarshalRoundTrip(t *testing.T) {
	ts := Timestamp{time.Date(2025, time.August, 31, 12, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-08-31T12:00:00"` {
		t.Errorf("marshaled = %s", b)
	}
	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Errorf("round trip changed value: %v != %v", back, ts)
	}
}

// TestCaseDecodesBackendPayload covers a response body exactly as the
// backend produces it, naive timestamps included.
func TestCaseDecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 12,
		"client_id": 7,
		"invoice_number": "INV-2025-01",
		"invoice_amount": 1234.5,
		"invoice_date": "2025-02-10",
		"due_date": "2025-03-10",
		"status": "In Follow-up",
		"last_follow_up_notes": "called them",
		"created_at": "2025-08-31T12:00:00",
		"updated_at": "2025-08-31T12:34:56.789012",
		"client": {
			"id": 7,
			"client_name": "Acme",
			"company_name": "Acme Corp",
			"city": "Springfield",
			"contact_person": "J. Doe",
			"phone": "555-0100",
			"email": "billing@acme.test",
			"created_at": "2025-07-01T09:30:00",
			"updated_at": "2025-07-01T09:30:00"
		}
	}`

	var c Case
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.ID != 12 || c.Status != StatusInFollowUp {
		t.Errorf("decoded case %+v", c)
	}
	if got := c.CreatedAt.Format("2006-01-02 15:04:05"); got != "2025-08-31 12:00:00" {
		t.Errorf("created_at = %s", got)
	}
	if c.UpdatedAt.Nanosecond() != 789012000 {
		t.Errorf("updated_at fraction lost: %v", c.UpdatedAt)
	}
	if c.Client.CreatedAt.IsZero() {
		t.Error("embedded client timestamps not decoded")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Status{"", "new", "Escalated", "IN FOLLOW-UP"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestCaseNotesNilNormalized(t *testing.T) {
	var c Case
	if c.Notes() != "" {
		t.Errorf("nil notes = %q", c.Notes())
	}
	n := "promised payment"
	c.LastFollowUpNotes = &n
	if c.Notes() != n {
		t.Errorf("notes = %q", c.Notes())
	}
}

func TestCaseUpdateEmpty(t *testing.T) {
	if !(CaseUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}
	s := StatusClosed
	if (CaseUpdate{Status: &s}).Empty() {
		t.Error("status change should not be empty")
	}
	notes := ""
	if (CaseUpdate{LastFollowUpNotes: &notes}).Empty() {
		t.Error("cleared notes should not be empty")
	}
}

func TestCaseUpdateWireShape(t *testing.T) {
	s := StatusClosed
	b, err := json.Marshal(CaseUpdate{Status: &s})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"status":"Closed"}` {
		t.Errorf("body = %s", b)
	}
}

func TestCaseFilterValues(t *testing.T) {
	if got := (CaseFilter{}).Values().Encode(); got != "" {
		t.Errorf("empty filter encodes to %q", got)
	}

	f := CaseFilter{Status: string(StatusInFollowUp), SortBy: SortByDueDate, Order: OrderDesc}
	got := f.Values().Encode()
	want := "order=desc&sort_by=due_date&status=In+Follow-up"
	if got != want {
		t.Errorf("Values() = %q, want %q", got, want)
	}

	partial := CaseFilter{SortBy: SortByInvoiceDate}
	if got := partial.Values().Encode(); got != "sort_by=invoice_date" {
		t.Errorf("partial filter = %q", got)
	}
}
