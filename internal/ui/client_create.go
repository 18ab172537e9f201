package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/model"
)

// clientCreateRedirectDelay is how long the success message stays on screen
// before the console moves on to case creation, nudging the user to open a
// case for the client they just registered. Tests shorten it.
var clientCreateRedirectDelay = 1500 * time.Millisecond

// clientCreate is the six-field client registration form. Clients are
// immutable once created, so this is the only client screen there is.
type clientCreate struct {
	app *App

	layout     *tview.Flex
	form       *tview.Form
	messageBar *tview.TextView

	clientName    *tview.InputField
	companyName   *tview.InputField
	city          *tview.InputField
	contactPerson *tview.InputField
	phone         *tview.InputField
	email         *tview.InputField

	submitting bool
}

func newClientCreate(a *App) *clientCreate {
	cc := &clientCreate{app: a}
	cc.setupLayout()
	return cc
}

func (cc *clientCreate) setupLayout() {
	theme := cc.app.theme

	newField := func(label string, max int) *tview.InputField {
		f := tview.NewInputField().
			SetLabel(label).
			SetFieldWidth(50).
			SetAcceptanceFunc(tview.InputFieldMaxLength(max))
		f.SetFieldBackgroundColor(theme.SelectionBg)
		f.SetFieldTextColor(theme.TextPrimary)
		f.SetLabelColor(theme.TextMuted)
		return f
	}

	cc.clientName = newField("Client Name *", model.MaxTextLen)
	cc.companyName = newField("Company Name *", model.MaxTextLen)
	cc.city = newField("City *", model.MaxTextLen)
	cc.contactPerson = newField("Contact Person *", model.MaxTextLen)
	cc.phone = newField("Phone *", model.MaxPhoneLen)
	cc.email = newField("Email *", model.MaxTextLen)

	cc.form = tview.NewForm()
	cc.app.frame(cc.form, " Create New Client ")
	cc.form.AddFormItem(cc.clientName)
	cc.form.AddFormItem(cc.companyName)
	cc.form.AddFormItem(cc.city)
	cc.form.AddFormItem(cc.contactPerson)
	cc.form.AddFormItem(cc.phone)
	cc.form.AddFormItem(cc.email)
	cc.form.AddButton("Create Client", cc.submit)
	cc.form.AddButton("Cancel", func() {
		cc.app.ShowCaseList()
	})
	cc.form.SetCancelFunc(func() {
		cc.app.ShowCaseList()
	})

	cc.messageBar = tview.NewTextView()
	cc.messageBar.SetDynamicColors(true)
	cc.messageBar.SetBackgroundColor(theme.Bg)

	cc.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(cc.messageBar, 1, 0, false).
		AddItem(cc.form, 0, 1, true)
	cc.layout.SetBackgroundColor(theme.Bg)
}

// submit validates the fields, posts the new client, and on success resets
// the form and schedules the redirect to case creation.
func (cc *clientCreate) submit() {
	if cc.submitting {
		return
	}
	cc.clearMessage()

	in, err := model.ParseClientForm(
		cc.clientName.GetText(),
		cc.companyName.GetText(),
		cc.city.GetText(),
		cc.contactPerson.GetText(),
		cc.phone.GetText(),
		cc.email.GetText(),
	)
	if err != nil {
		cc.showError(err.Error())
		return
	}

	cc.submitting = true
	cc.app.setStatus("[%s]Creating client...[-]", cc.app.theme.TagWarning)

	go func() {
		created, err := cc.app.api.CreateClient(cc.app.ctx, in)
		cc.app.QueueUpdateDraw(func() {
			cc.submitting = false
			if err != nil {
				cc.showError(api.ErrorMessage(err, "Failed to create client. Please check all fields."))
				cc.app.showKeyHints()
				return
			}

			cc.app.logger.Printf("created client %d (%s)", created.ID, created.ClientName)
			cc.showSuccess("Client created successfully!")
			cc.resetFields()

			// Let the success message land, then move on to case creation.
			time.AfterFunc(clientCreateRedirectDelay, func() {
				cc.app.QueueUpdateDraw(func() {
					cc.app.ShowCaseCreate()
				})
			})
		})
	}()
}

func (cc *clientCreate) resetFields() {
	cc.clientName.SetText("")
	cc.companyName.SetText("")
	cc.city.SetText("")
	cc.contactPerson.SetText("")
	cc.phone.SetText("")
	cc.email.SetText("")
}

func (cc *clientCreate) showError(msg string) {
	cc.messageBar.SetText(fmt.Sprintf("[%s]%s[-]", cc.app.theme.TagError, msg))
}

func (cc *clientCreate) showSuccess(msg string) {
	cc.messageBar.SetText(fmt.Sprintf("[%s]%s[-]", cc.app.theme.TagSuccess, msg))
}

func (cc *clientCreate) clearMessage() {
	cc.messageBar.SetText("")
}
