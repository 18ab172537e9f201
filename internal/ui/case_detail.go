package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/format"
	"github.com/recoverydesk/recovery-console/internal/model"
)

// detailMode is the explicit screen mode. Modeling this as a variant rather
// than a boolean keeps the cancel/save contracts unambiguous: Editing owns
// scratch form state, View always reflects the last fetched case.
type detailMode int

const (
	modeView detailMode = iota
	modeEditing
)

// caseDetail shows one case and allows editing exactly two fields: status
// and follow-up notes. Saving sends only the changed subset, and a save
// with no changes is rejected locally without touching the network.
type caseDetail struct {
	app    *App
	caseID int64

	// current is the last fetched case; nil until the first fetch lands.
	current *model.Case
	mode    detailMode

	// Scratch form state, populated when entering Editing.
	formStatus model.Status
	formNotes  string

	layout     *tview.Flex
	body       *tview.Pages
	viewText   *tview.TextView
	editForm   *tview.Form
	errorView  *tview.TextView
	messageBar *tview.TextView

	statusDrop *tview.DropDown
	notesArea  *tview.TextArea

	saving bool
}

func newCaseDetail(a *App, id int64) *caseDetail {
	cd := &caseDetail{
		app:    a,
		caseID: id,
		mode:   modeView,
	}
	cd.setupLayout()
	return cd
}

func (cd *caseDetail) setupLayout() {
	theme := cd.app.theme

	cd.viewText = tview.NewTextView()
	cd.viewText.SetDynamicColors(true)
	cd.viewText.SetWordWrap(true)
	cd.viewText.SetScrollable(true)
	cd.app.frame(cd.viewText, " Case Details ")
	cd.viewText.SetText(fmt.Sprintf("\n[%s]Loading case details...[-]", theme.TagMuted))
	cd.viewText.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			cd.app.ShowCaseList()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'e', 'E':
				cd.startEdit()
				return nil
			case 'r', 'R':
				cd.fetch()
				return nil
			}
		}
		return event
	})

	// Full-screen failure state for a fetch that never produced a case.
	cd.errorView = tview.NewTextView()
	cd.errorView.SetDynamicColors(true)
	cd.errorView.SetTextAlign(tview.AlignCenter)
	cd.app.frame(cd.errorView, " Case Details ")
	cd.errorView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			cd.app.ShowCaseList()
			return nil
		}
		if event.Key() == tcell.KeyRune && (event.Rune() == 'l' || event.Rune() == 'L') {
			cd.app.ShowCaseList()
			return nil
		}
		return event
	})

	cd.editForm = tview.NewForm()
	cd.app.frame(cd.editForm, " Edit Case (Esc to cancel) ")
	cd.buildEditForm()

	cd.messageBar = tview.NewTextView()
	cd.messageBar.SetDynamicColors(true)
	cd.messageBar.SetBackgroundColor(theme.Bg)

	cd.body = tview.NewPages()
	cd.body.AddPage("view", cd.viewText, true, true)
	cd.body.AddPage("edit", cd.editForm, true, false)
	cd.body.AddPage("error", cd.errorView, true, false)

	cd.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(cd.messageBar, 1, 0, false).
		AddItem(cd.body, 0, 1, true)
	cd.layout.SetBackgroundColor(theme.Bg)
}

func (cd *caseDetail) buildEditForm() {
	statusLabels := make([]string, 0, 4)
	for _, s := range model.Statuses() {
		statusLabels = append(statusLabels, string(s))
	}

	cd.statusDrop = tview.NewDropDown().
		SetLabel("Status").
		SetOptions(statusLabels, nil)
	cd.statusDrop.SetSelectedFunc(func(text string, index int) {
		cd.formStatus = model.Statuses()[index]
	})

	cd.notesArea = tview.NewTextArea().
		SetPlaceholder("Enter follow-up notes...")
	cd.notesArea.SetLabel("Last Follow-up Notes")
	cd.notesArea.SetChangedFunc(func() {
		cd.formNotes = cd.notesArea.GetText()
	})

	cd.editForm.AddFormItem(cd.statusDrop)
	cd.editForm.AddFormItem(cd.notesArea)
	cd.editForm.AddButton("Save Changes", cd.save)
	cd.editForm.AddButton("Cancel", cd.cancelEdit)
	cd.editForm.SetCancelFunc(cd.cancelEdit)
}

// fetch loads the case asynchronously and re-renders on arrival. The screen
// fetches on mount and again after a successful save; the backend stays the
// source of truth for updated_at and any server-side normalization.
func (cd *caseDetail) fetch() {
	cd.app.setStatus("[%s]Loading case details...[-]", cd.app.theme.TagWarning)
	go func() {
		c, err := cd.app.api.GetCase(cd.app.ctx, cd.caseID)
		cd.app.QueueUpdateDraw(func() {
			cd.applyFetch(c, err)
		})
	}()
}

func (cd *caseDetail) applyFetch(c *model.Case, err error) {
	theme := cd.app.theme
	if err != nil {
		msg := api.ErrorMessage(err, "Failed to fetch case details")
		if cd.current == nil {
			// Nothing to show yet: the whole screen becomes the error.
			cd.errorView.SetText(fmt.Sprintf("\n[%s]%s[-]\n\n[%s]L: back to case list[-]", theme.TagError, msg, theme.TagMuted))
			cd.body.SwitchToPage("error")
			cd.app.app.SetFocus(cd.errorView)
		} else {
			cd.showError(msg)
		}
		return
	}

	cd.current = c
	cd.formStatus = c.Status
	cd.formNotes = c.Notes()
	cd.renderView()
	if cd.mode == modeView {
		cd.body.SwitchToPage("view")
		cd.app.app.SetFocus(cd.viewText)
	}
	cd.app.setStatus("[%s]Case #%d[-] | [%s]e[-]:edit [%s]r[-]:refresh [%s]Esc[-]:back",
		theme.TagSuccess, c.ID, theme.TagAccent, theme.TagAccent, theme.TagAccent)
}

// startEdit switches to Editing, copying the current status and notes into
// the scratch form state.
func (cd *caseDetail) startEdit() {
	if cd.current == nil {
		return
	}
	cd.mode = modeEditing
	cd.formStatus = cd.current.Status
	cd.formNotes = cd.current.Notes()

	for i, s := range model.Statuses() {
		if s == cd.formStatus {
			cd.statusDrop.SetCurrentOption(i)
			break
		}
	}
	cd.notesArea.SetText(cd.formNotes, true)

	cd.clearMessage()
	cd.body.SwitchToPage("edit")
	cd.app.app.SetFocus(cd.editForm)
}

// cancelEdit discards edits, clears any message, and restores the form
// state from the last fetched case.
func (cd *caseDetail) cancelEdit() {
	if cd.current != nil {
		cd.formStatus = cd.current.Status
		cd.formNotes = cd.current.Notes()
	}
	cd.mode = modeView
	cd.clearMessage()
	cd.body.SwitchToPage("view")
	cd.app.app.SetFocus(cd.viewText)
}

// updateDiff computes the partial update for the two editable fields.
// Notes are compared against the null-normalized current value, so clearing
// a note produces a change to "" while leaving an absent note untouched
// produces none.
func updateDiff(current *model.Case, status model.Status, notes string) model.CaseUpdate {
	var upd model.CaseUpdate
	if status != current.Status {
		s := status
		upd.Status = &s
	}
	if notes != current.Notes() {
		n := notes
		upd.LastFollowUpNotes = &n
	}
	return upd
}

// save diffs the form against the last fetched case and sends only the
// changed fields. An empty diff is a local error; no request is made.
func (cd *caseDetail) save() {
	if cd.current == nil || cd.saving {
		return
	}
	cd.clearMessage()

	upd := updateDiff(cd.current, cd.formStatus, cd.formNotes)
	if upd.Empty() {
		cd.showError("No changes to save")
		return
	}

	cd.saving = true
	go func() {
		_, err := cd.app.api.UpdateCase(cd.app.ctx, cd.caseID, upd)
		cd.app.QueueUpdateDraw(func() {
			cd.saving = false
			if err != nil {
				cd.showError(api.ErrorMessage(err, "Failed to update case"))
				return
			}
			cd.showSuccess("Case updated successfully!")
			cd.mode = modeView
			cd.body.SwitchToPage("view")
			cd.app.app.SetFocus(cd.viewText)
			// Re-fetch so the view shows server-confirmed state, not just
			// the values we submitted.
			cd.fetch()
		})
	}()
}

func (cd *caseDetail) renderView() {
	if cd.current == nil {
		return
	}
	c := cd.current
	theme := cd.app.theme
	lbl := theme.TagMuted
	val := theme.TagTextPrimary

	badge := format.StatusClass(c.Status)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[::b][%s]Client Information[-][-]\n\n", theme.TagWarning))
	sb.WriteString(fmt.Sprintf("  [%s]Client Name:[-]    [%s]%s[-]\n", lbl, val, c.Client.ClientName))
	sb.WriteString(fmt.Sprintf("  [%s]Company:[-]        [%s]%s[-]\n", lbl, val, c.Client.CompanyName))
	sb.WriteString(fmt.Sprintf("  [%s]City:[-]           [%s]%s[-]\n", lbl, val, c.Client.City))
	sb.WriteString(fmt.Sprintf("  [%s]Contact Person:[-] [%s]%s[-]\n", lbl, val, c.Client.ContactPerson))
	sb.WriteString(fmt.Sprintf("  [%s]Phone:[-]          [%s]%s[-]\n", lbl, val, c.Client.Phone))
	sb.WriteString(fmt.Sprintf("  [%s]Email:[-]          [%s]%s[-]\n", lbl, val, c.Client.Email))

	sb.WriteString(fmt.Sprintf("\n[::b][%s]Invoice Information[-][-]\n\n", theme.TagWarning))
	sb.WriteString(fmt.Sprintf("  [%s]Invoice Number:[-] [%s]%s[-]\n", lbl, val, c.InvoiceNumber))
	sb.WriteString(fmt.Sprintf("  [%s]Invoice Amount:[-] [%s]%s[-]\n", lbl, val, format.Currency(c.InvoiceAmount)))
	sb.WriteString(fmt.Sprintf("  [%s]Invoice Date:[-]   [%s]%s[-]\n", lbl, val, format.DateLong(c.InvoiceDate)))
	sb.WriteString(fmt.Sprintf("  [%s]Due Date:[-]       [%s]%s[-]\n", lbl, val, format.DateLong(c.DueDate)))
	sb.WriteString(fmt.Sprintf("  [%s]Status:[-]         [%s]%s[-]\n", lbl, theme.statusTag(badge), c.Status))

	sb.WriteString(fmt.Sprintf("\n[::b][%s]Follow-up Notes[-][-]\n\n", theme.TagWarning))
	if notes := c.Notes(); notes != "" {
		sb.WriteString(fmt.Sprintf("  [%s]%s[-]\n", val, notes))
	} else {
		sb.WriteString(fmt.Sprintf("  [%s]No follow-up notes yet.[-]\n", theme.TagMuted))
	}

	sb.WriteString(fmt.Sprintf("\n[%s]Created: %s   Last Updated: %s[-]\n",
		theme.TagMuted, format.Timestamp(c.CreatedAt), format.Timestamp(c.UpdatedAt)))

	cd.viewText.SetText(sb.String())
}

func (cd *caseDetail) showError(msg string) {
	cd.messageBar.SetText(fmt.Sprintf("[%s]%s[-]", cd.app.theme.TagError, msg))
}

func (cd *caseDetail) showSuccess(msg string) {
	cd.messageBar.SetText(fmt.Sprintf("[%s]%s[-]", cd.app.theme.TagSuccess, msg))
}

func (cd *caseDetail) clearMessage() {
	cd.messageBar.SetText("")
}
