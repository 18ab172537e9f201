package format

import (
	"testing"
	"time"

	"github.com/recoverydesk/recovery-console/internal/model"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1234.5, "$1,234.50"},
		{0.01, "$0.01"},
		{100, "$100.00"},
		{2500000, "$2,500,000.00"},
		{999.999, "$1,000.00"},
	}
	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestDateFormats(t *testing.T) {
	d := model.NewDate(2025, time.March, 9)
	if got := DateLong(d); got != "March 9, 2025" {
		t.Errorf("DateLong = %q", got)
	}
	if got := DateShort(d); got != "Mar 9, 2025" {
		t.Errorf("DateShort = %q", got)
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status model.Status
		want   string
	}{
		{model.StatusNew, "status-new"},
		{model.StatusInFollowUp, "status-followup"},
		{model.StatusPartiallyPaid, "status-partial"},
		{model.StatusClosed, "status-closed"},
		{model.Status("Escalated"), "status-new"}, // unknown falls back to New
		{model.Status(""), "status-new"},
	}
	for _, tt := range tests {
		if got := StatusClass(tt.status); got != tt.want {
			t.Errorf("StatusClass(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
