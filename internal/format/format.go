// Package format renders amounts, dates, and statuses for display. All
// money in the tracker is US dollars, formatted for the en-US locale.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/recoverydesk/recovery-console/internal/model"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// Currency renders an invoice amount as locale-formatted USD:
// 1234.5 -> "$1,234.50".
func Currency(amount float64) string {
	return usPrinter.Sprintf("$%v", number.Decimal(amount, number.Scale(2)))
}

// DateLong renders a calendar date in long form: "January 2, 2006".
// Used on the detail screen.
func DateLong(d model.Date) string {
	return d.Format("January 2, 2006")
}

// DateShort renders a calendar date in short form: "Jan 2, 2006".
// Used in the case list table.
func DateShort(d model.Date) string {
	return d.Format("Jan 2, 2006")
}

// Timestamp renders a server timestamp for the detail footer.
func Timestamp(t model.Timestamp) string {
	return t.Format("2006-01-02 15:04:05")
}

// StatusClass maps a workflow status to its badge style name. Unrecognized
// values fall back to the "New" style.
func StatusClass(s model.Status) string {
	switch s {
	case model.StatusInFollowUp:
		return "status-followup"
	case model.StatusPartiallyPaid:
		return "status-partial"
	case model.StatusClosed:
		return "status-closed"
	case model.StatusNew:
		return "status-new"
	}
	return "status-new"
}
