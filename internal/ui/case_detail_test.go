package ui

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/recoverydesk/recovery-console/internal/model"
)

func TestUpdateDiff(t *testing.T) {
	withNotes := sampleCase(1, model.StatusNew, "called them")
	noNotes := sampleCase(1, model.StatusNew, "")

	tests := []struct {
		name      string
		current   model.Case
		status    model.Status
		notes     string
		wantEmpty bool
		wantStat  *model.Status
		wantNotes *string
	}{
		{
			name:      "no changes",
			current:   withNotes,
			status:    model.StatusNew,
			notes:     "called them",
			wantEmpty: true,
		},
		{
			name:     "status only",
			current:  withNotes,
			status:   model.StatusClosed,
			notes:    "called them",
			wantStat: statusPtr(model.StatusClosed),
		},
		{
			name:      "notes only",
			current:   withNotes,
			status:    model.StatusNew,
			notes:     "they promised payment",
			wantNotes: strPtr("they promised payment"),
		},
		{
			name:      "both fields",
			current:   withNotes,
			status:    model.StatusPartiallyPaid,
			notes:     "half received",
			wantStat:  statusPtr(model.StatusPartiallyPaid),
			wantNotes: strPtr("half received"),
		},
		{
			name:      "clearing notes is a change",
			current:   withNotes,
			status:    model.StatusNew,
			notes:     "",
			wantNotes: strPtr(""),
		},
		{
			name:      "absent notes left blank is no change",
			current:   noNotes,
			status:    model.StatusNew,
			notes:     "",
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upd := updateDiff(&tt.current, tt.status, tt.notes)
			if upd.Empty() != tt.wantEmpty {
				t.Fatalf("Empty() = %v, want %v", upd.Empty(), tt.wantEmpty)
			}
			if (upd.Status == nil) != (tt.wantStat == nil) {
				t.Fatalf("Status = %v, want %v", upd.Status, tt.wantStat)
			}
			if upd.Status != nil && *upd.Status != *tt.wantStat {
				t.Errorf("Status = %q, want %q", *upd.Status, *tt.wantStat)
			}
			if (upd.LastFollowUpNotes == nil) != (tt.wantNotes == nil) {
				t.Fatalf("Notes = %v, want %v", upd.LastFollowUpNotes, tt.wantNotes)
			}
			if upd.LastFollowUpNotes != nil && *upd.LastFollowUpNotes != *tt.wantNotes {
				t.Errorf("Notes = %q, want %q", *upd.LastFollowUpNotes, *tt.wantNotes)
			}
		})
	}
}

func statusPtr(s model.Status) *model.Status { return &s }
func strPtr(s string) *string                { return &s }

func TestCaseDetailSaveWithoutChangesIsLocal(t *testing.T) {
	var patches int32
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patches++
		}
		emptyBackend(w, r)
	})
	cd := newCaseDetail(app, 5)

	current := sampleCase(5, model.StatusNew, "called them")
	cd.current = &current
	cd.formStatus = current.Status
	cd.formNotes = current.Notes()

	cd.save()

	if !strings.Contains(cd.messageBar.GetText(true), "No changes to save") {
		t.Errorf("message = %q", cd.messageBar.GetText(true))
	}
	if patches != 0 {
		t.Errorf("save without changes made %d PATCH requests", patches)
	}
	if cd.saving {
		t.Error("saving flag left set")
	}
}

func TestCaseDetailApplyFetchSuccess(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cd := newCaseDetail(app, 12)

	c := sampleCase(12, model.StatusInFollowUp, "left voicemail")
	cd.applyFetch(&c, nil)

	if cd.current == nil || cd.current.ID != 12 {
		t.Fatalf("current = %+v", cd.current)
	}
	if cd.formStatus != model.StatusInFollowUp || cd.formNotes != "left voicemail" {
		t.Errorf("form state not synced: %q / %q", cd.formStatus, cd.formNotes)
	}
	name, _ := cd.body.GetFrontPage()
	if name != "view" {
		t.Errorf("front page = %s, want view", name)
	}
	text := cd.viewText.GetText(true)
	for _, want := range []string{"Acme Corp", "INV-1", "$500.00", "left voicemail"} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered view missing %q", want)
		}
	}
}

func TestCaseDetailFirstFetchFailureTakesOverScreen(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cd := newCaseDetail(app, 12)

	cd.applyFetch(nil, errors.New("connection refused"))

	name, _ := cd.body.GetFrontPage()
	if name != "error" {
		t.Errorf("front page = %s, want error", name)
	}
}

func TestCaseDetailRefetchFailureKeepsView(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cd := newCaseDetail(app, 12)

	c := sampleCase(12, model.StatusNew, "")
	cd.applyFetch(&c, nil)
	cd.applyFetch(nil, errors.New("connection refused"))

	if cd.current == nil {
		t.Fatal("refetch failure must not discard the loaded case")
	}
	name, _ := cd.body.GetFrontPage()
	if name != "view" {
		t.Errorf("front page = %s, want view", name)
	}
	if cd.messageBar.GetText(true) == "" {
		t.Error("inline error message not shown")
	}
}

func TestCaseDetailCancelRestoresFormState(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cd := newCaseDetail(app, 12)

	c := sampleCase(12, model.StatusNew, "original note")
	cd.applyFetch(&c, nil)

	cd.startEdit()
	cd.formStatus = model.StatusClosed
	cd.formNotes = "scratch edits"

	cd.cancelEdit()

	if cd.formStatus != model.StatusNew || cd.formNotes != "original note" {
		t.Errorf("cancel left form state %q / %q", cd.formStatus, cd.formNotes)
	}
	name, _ := cd.body.GetFrontPage()
	if name != "view" {
		t.Errorf("front page = %s, want view", name)
	}
}
