package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Status is the recovery workflow stage of a case. The backend rejects any
// value outside this set, and the console never offers one.
type Status string

const (
	StatusNew           Status = "New"
	StatusInFollowUp    Status = "In Follow-up"
	StatusPartiallyPaid Status = "Partially Paid"
	StatusClosed        Status = "Closed"
)

// Statuses returns all workflow stages in display order.
func Statuses() []Status {
	return []Status{StatusNew, StatusInFollowUp, StatusPartiallyPaid, StatusClosed}
}

// Valid reports whether s is one of the four workflow stages.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInFollowUp, StatusPartiallyPaid, StatusClosed:
		return true
	}
	return false
}

// Sort keys and orders accepted by the case list endpoint.
const (
	SortByDueDate     = "due_date"
	SortByInvoiceDate = "invoice_date"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Date is a calendar date serialized as "YYYY-MM-DD" on the wire.
// The time component is always midnight UTC.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{t}, nil
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timestamp is a server-side record time. The backend emits naive ISO-8601
// with optional fractional seconds ("2025-08-31T12:00:00", no offset);
// RFC 3339 values are accepted as well.
type Timestamp struct {
	time.Time
}

const timestampLayout = "2006-01-02T15:04:05.999999999"

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(timestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(timestampLayout, s)
	}
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	*t = Timestamp{parsed}
	return nil
}

// Client is a debtor entity. Clients are created through the console but
// never edited or deleted by it.
type Client struct {
	ID            int64     `json:"id"`
	ClientName    string    `json:"client_name"`
	CompanyName   string    `json:"company_name"`
	City          string    `json:"city"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

// Case is a tracked overdue invoice tied to a client. List and get responses
// embed the referenced client under the "client" key.
type Case struct {
	ID                int64     `json:"id"`
	ClientID          int64     `json:"client_id"`
	InvoiceNumber     string    `json:"invoice_number"`
	InvoiceAmount     float64   `json:"invoice_amount"`
	InvoiceDate       Date      `json:"invoice_date"`
	DueDate           Date      `json:"due_date"`
	Status            Status    `json:"status"`
	LastFollowUpNotes *string   `json:"last_follow_up_notes"`
	CreatedAt         Timestamp `json:"created_at"`
	UpdatedAt         Timestamp `json:"updated_at"`
	Client            Client    `json:"client"`
}

// Notes returns the follow-up notes with a null normalized to "".
func (c Case) Notes() string {
	if c.LastFollowUpNotes == nil {
		return ""
	}
	return *c.LastFollowUpNotes
}

// ClientCreate is the POST /clients request body.
type ClientCreate struct {
	ClientName    string `json:"client_name"`
	CompanyName   string `json:"company_name"`
	City          string `json:"city"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// CaseCreate is the POST /cases request body. LastFollowUpNotes is nil for
// blank notes so the backend receives an explicit null, not "".
type CaseCreate struct {
	ClientID          int64   `json:"client_id"`
	InvoiceNumber     string  `json:"invoice_number"`
	InvoiceAmount     float64 `json:"invoice_amount"`
	InvoiceDate       Date    `json:"invoice_date"`
	DueDate           Date    `json:"due_date"`
	Status            Status  `json:"status"`
	LastFollowUpNotes *string `json:"last_follow_up_notes"`
}

// CaseUpdate is the PATCH /cases/{id} request body. A nil field means
// "unchanged" and is omitted from the wire payload entirely, so the backend
// only ever sees the changed subset.
type CaseUpdate struct {
	Status            *Status `json:"status,omitempty"`
	LastFollowUpNotes *string `json:"last_follow_up_notes,omitempty"`
}

// Empty reports whether the update carries no changes at all.
func (u CaseUpdate) Empty() bool {
	return u.Status == nil && u.LastFollowUpNotes == nil
}

// CaseFilter is the query parameter set for GET /cases. Zero values are
// omitted from the query string; the backend applies its own defaults and is
// solely responsible for filtering and sorting semantics.
type CaseFilter struct {
	Status string // "" means all statuses
	SortBy string // due_date | invoice_date
	Order  string // asc | desc
}

// Values serializes the filter, including only the parameters that are set.
func (f CaseFilter) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.SortBy != "" {
		v.Set("sort_by", f.SortBy)
	}
	if f.Order != "" {
		v.Set("order", f.Order)
	}
	return v
}
