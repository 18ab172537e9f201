package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/model"
)

// caseCreate is the case registration screen. It fetches the client list on
// mount: with no clients there is nothing a case could reference, so the
// form is withheld and the user is pointed at client creation instead.
type caseCreate struct {
	app *App

	layout      *tview.Flex
	body        *tview.Pages
	loadingView *tview.TextView
	blockedView *tview.TextView
	form        *tview.Form
	messageBar  *tview.TextView

	clientDrop    *tview.DropDown
	invoiceNumber *tview.InputField
	amount        *tview.InputField
	invoiceDate   *tview.InputField
	dueDate       *tview.InputField
	statusDrop    *tview.DropDown
	notesArea     *tview.TextArea

	clients       []model.Client
	selectedIndex int

	submitting bool
}

func newCaseCreate(a *App) *caseCreate {
	cc := &caseCreate{app: a}
	cc.setupLayout()
	return cc
}

func (cc *caseCreate) setupLayout() {
	theme := cc.app.theme

	cc.loadingView = tview.NewTextView()
	cc.loadingView.SetDynamicColors(true)
	cc.loadingView.SetTextAlign(tview.AlignCenter)
	cc.app.frame(cc.loadingView, " Create New Recovery Case ")
	cc.loadingView.SetText(fmt.Sprintf("\n[%s]Loading...[-]", theme.TagMuted))

	cc.blockedView = tview.NewTextView()
	cc.blockedView.SetDynamicColors(true)
	cc.blockedView.SetTextAlign(tview.AlignCenter)
	cc.app.frame(cc.blockedView, " Create New Recovery Case ")
	cc.blockedView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			cc.app.ShowCaseList()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'c' || event.Rune() == 'C' {
				cc.app.ShowClientCreate()
				return nil
			}
		}
		return event
	})

	cc.form = tview.NewForm()
	cc.app.frame(cc.form, " Create New Recovery Case ")

	cc.messageBar = tview.NewTextView()
	cc.messageBar.SetDynamicColors(true)
	cc.messageBar.SetBackgroundColor(theme.Bg)

	cc.body = tview.NewPages()
	cc.body.AddPage("loading", cc.loadingView, true, true)
	cc.body.AddPage("blocked", cc.blockedView, true, false)
	cc.body.AddPage("form", cc.form, true, false)

	cc.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(cc.messageBar, 1, 0, false).
		AddItem(cc.body, 0, 1, true)
	cc.layout.SetBackgroundColor(theme.Bg)
}

// loadClients fetches the selectable clients. The form is only built once a
// non-empty list arrives; the first client is pre-selected.
func (cc *caseCreate) loadClients() {
	cc.app.setStatus("[%s]Loading clients...[-]", cc.app.theme.TagWarning)
	go func() {
		clients, err := cc.app.api.ListClients(cc.app.ctx)
		cc.app.QueueUpdateDraw(func() {
			cc.applyClients(clients, err)
		})
	}()
}

func (cc *caseCreate) applyClients(clients []model.Client, err error) {
	theme := cc.app.theme
	if err != nil {
		msg := api.ErrorMessage(err, "Failed to load clients. Please create a client first.")
		cc.blockedView.SetText(fmt.Sprintf("\n[%s]%s[-]\n\n[%s]c: create client   Esc: back to case list[-]",
			theme.TagError, msg, theme.TagMuted))
		cc.body.SwitchToPage("blocked")
		cc.app.app.SetFocus(cc.blockedView)
		return
	}
	if len(clients) == 0 {
		cc.blockedView.SetText(fmt.Sprintf("\n[%s]No clients found. Please create a client first before creating a case.[-]\n\n[%s]c[-][%s]: create client[-]",
			theme.TagError, theme.TagAccent, theme.TagMuted))
		cc.body.SwitchToPage("blocked")
		cc.app.app.SetFocus(cc.blockedView)
		cc.app.setStatus("[%s]No clients available[-]", theme.TagWarning)
		return
	}

	cc.clients = clients
	cc.selectedIndex = 0
	cc.buildForm()
	cc.body.SwitchToPage("form")
	cc.app.app.SetFocus(cc.form)
	cc.app.setStatus("[%s]%d clients available[-]", theme.TagSuccess, len(clients))
}

func (cc *caseCreate) buildForm() {
	theme := cc.app.theme

	clientLabels := make([]string, 0, len(cc.clients))
	for _, c := range cc.clients {
		clientLabels = append(clientLabels, fmt.Sprintf("%s (%s)", c.ClientName, c.CompanyName))
	}
	cc.clientDrop = tview.NewDropDown().
		SetLabel("Client *").
		SetOptions(clientLabels, nil)
	cc.clientDrop.SetCurrentOption(0)
	cc.clientDrop.SetSelectedFunc(func(text string, index int) {
		cc.selectedIndex = index
	})

	newField := func(label string, width int, accept func(string, rune) bool) *tview.InputField {
		f := tview.NewInputField().
			SetLabel(label).
			SetFieldWidth(width)
		if accept != nil {
			f.SetAcceptanceFunc(accept)
		}
		f.SetFieldBackgroundColor(theme.SelectionBg)
		f.SetFieldTextColor(theme.TextPrimary)
		f.SetLabelColor(theme.TextMuted)
		return f
	}

	cc.invoiceNumber = newField("Invoice Number *", 40, tview.InputFieldMaxLength(model.MaxInvoiceLen))
	cc.amount = newField("Invoice Amount *", 16, tview.InputFieldFloat)
	cc.invoiceDate = newField("Invoice Date (YYYY-MM-DD) *", 16, nil)
	cc.dueDate = newField("Due Date (YYYY-MM-DD) *", 16, nil)

	statusLabels := make([]string, 0, 4)
	for _, s := range model.Statuses() {
		statusLabels = append(statusLabels, string(s))
	}
	cc.statusDrop = tview.NewDropDown().
		SetLabel("Status *").
		SetOptions(statusLabels, nil)
	cc.statusDrop.SetCurrentOption(0) // default "New"

	cc.notesArea = tview.NewTextArea().
		SetPlaceholder("Optional follow-up notes...")
	cc.notesArea.SetLabel("Last Follow-up Notes")

	cc.form.Clear(true)
	cc.form.AddFormItem(cc.clientDrop)
	cc.form.AddFormItem(cc.invoiceNumber)
	cc.form.AddFormItem(cc.amount)
	cc.form.AddFormItem(cc.invoiceDate)
	cc.form.AddFormItem(cc.dueDate)
	cc.form.AddFormItem(cc.statusDrop)
	cc.form.AddFormItem(cc.notesArea)
	cc.form.AddButton("Create Case", cc.submit)
	cc.form.AddButton("Cancel", func() {
		cc.app.ShowCaseList()
	})
	cc.form.SetCancelFunc(func() {
		cc.app.ShowCaseList()
	})
}

// submit coerces the field values into the typed payload (integer client
// id, float amount, null for blank notes) and creates the case. On success
// the console navigates to the detail screen for the id the backend
// returned. Date ordering is deliberately left to the backend.
func (cc *caseCreate) submit() {
	if cc.submitting {
		return
	}
	cc.clearMessage()

	if cc.selectedIndex < 0 || cc.selectedIndex >= len(cc.clients) {
		cc.showError("a client must be selected")
		return
	}
	clientID := cc.clients[cc.selectedIndex].ID

	statusIdx, _ := cc.statusDrop.GetCurrentOption()
	status := model.StatusNew
	if statusIdx >= 0 && statusIdx < len(model.Statuses()) {
		status = model.Statuses()[statusIdx]
	}

	in, err := model.ParseCaseForm(
		clientID,
		cc.invoiceNumber.GetText(),
		cc.amount.GetText(),
		cc.invoiceDate.GetText(),
		cc.dueDate.GetText(),
		status,
		cc.notesArea.GetText(),
	)
	if err != nil {
		cc.showError(err.Error())
		return
	}

	cc.submitting = true
	cc.app.setStatus("[%s]Creating case...[-]", cc.app.theme.TagWarning)

	go func() {
		created, err := cc.app.api.CreateCase(cc.app.ctx, in)
		cc.app.QueueUpdateDraw(func() {
			cc.submitting = false
			if err != nil {
				cc.showError(api.ErrorMessage(err, "Failed to create case. Please check all fields."))
				cc.app.showKeyHints()
				return
			}
			cc.app.logger.Printf("created case %d (invoice %s)", created.ID, created.InvoiceNumber)
			cc.app.ShowCaseDetail(created.ID)
		})
	}()
}

func (cc *caseCreate) showError(msg string) {
	cc.messageBar.SetText(fmt.Sprintf("[%s]%s[-]", cc.app.theme.TagError, msg))
}

func (cc *caseCreate) clearMessage() {
	cc.messageBar.SetText("")
}
