package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Maximum field lengths enforced by the backend schema. The forms reject
// oversized input before a request is ever made.
const (
	MaxTextLen    = 255
	MaxPhoneLen   = 50
	MaxInvoiceLen = 100

	// MinInvoiceAmount is the smallest accepted invoice amount.
	MinInvoiceAmount = 0.01
)

func requireText(field, value string, max int) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	// Character count, not bytes: the limits match the backend schema,
	// which counts characters.
	if utf8.RuneCountInString(value) > max {
		return "", fmt.Errorf("%s must be at most %d characters", field, max)
	}
	return value, nil
}

// ParseClientForm validates the six client fields and builds the create
// payload. It rejects rather than truncates: nothing is silently altered.
func ParseClientForm(clientName, companyName, city, contactPerson, phone, email string) (ClientCreate, error) {
	var out ClientCreate
	var err error

	if out.ClientName, err = requireText("client name", clientName, MaxTextLen); err != nil {
		return ClientCreate{}, err
	}
	if out.CompanyName, err = requireText("company name", companyName, MaxTextLen); err != nil {
		return ClientCreate{}, err
	}
	if out.City, err = requireText("city", city, MaxTextLen); err != nil {
		return ClientCreate{}, err
	}
	if out.ContactPerson, err = requireText("contact person", contactPerson, MaxTextLen); err != nil {
		return ClientCreate{}, err
	}
	if out.Phone, err = requireText("phone", phone, MaxPhoneLen); err != nil {
		return ClientCreate{}, err
	}
	if out.Email, err = requireText("email", email, MaxTextLen); err != nil {
		return ClientCreate{}, err
	}
	if !strings.Contains(out.Email, "@") {
		return ClientCreate{}, fmt.Errorf("email is not a valid address")
	}
	return out, nil
}

// ParseCaseForm validates the case creation fields and builds the create
// payload with the declared wire types: client id as integer, amount as
// float, blank notes as an explicit null. Date ordering is not checked here;
// the backend owns that rule.
func ParseCaseForm(clientID int64, invoiceNumber, amountStr, invoiceDateStr, dueDateStr string, status Status, notes string) (CaseCreate, error) {
	var out CaseCreate

	if clientID <= 0 {
		return CaseCreate{}, fmt.Errorf("a client must be selected")
	}
	out.ClientID = clientID

	num, err := requireText("invoice number", invoiceNumber, MaxInvoiceLen)
	if err != nil {
		return CaseCreate{}, err
	}
	out.InvoiceNumber = num

	amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
	if err != nil {
		return CaseCreate{}, fmt.Errorf("invoice amount %q is not a number", amountStr)
	}
	if amount < MinInvoiceAmount {
		return CaseCreate{}, fmt.Errorf("invoice amount must be at least %.2f", MinInvoiceAmount)
	}
	out.InvoiceAmount = amount

	if out.InvoiceDate, err = ParseDate(invoiceDateStr); err != nil {
		return CaseCreate{}, fmt.Errorf("invoice date: %w", err)
	}
	if out.DueDate, err = ParseDate(dueDateStr); err != nil {
		return CaseCreate{}, fmt.Errorf("due date: %w", err)
	}

	if !status.Valid() {
		return CaseCreate{}, fmt.Errorf("invalid status %q", status)
	}
	out.Status = status

	if notes != "" {
		out.LastFollowUpNotes = &notes
	}
	return out, nil
}
