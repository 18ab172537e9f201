package ui

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/format"
	"github.com/recoverydesk/recovery-console/internal/model"
)

// statusFilterOptions maps the status dropdown entries to query values.
// Index 0 is "all statuses" and serializes to the empty string, which the
// API client omits from the query entirely.
var statusFilterOptions = []string{"All Statuses", "New", "In Follow-up", "Partially Paid", "Closed"}

// caseList is the Recovery Cases overview: a filter bar, a table of cases,
// and an empty-state message. Every filter change triggers exactly one
// re-fetch; the backend owns the filtering and sorting semantics and this
// screen only forwards parameters.
type caseList struct {
	app *App

	layout    *tview.Flex
	filterBar *tview.Flex
	body      *tview.Pages
	table     *tview.Table
	emptyView *tview.TextView

	statusDrop *tview.DropDown
	sortDrop   *tview.DropDown
	orderDrop  *tview.DropDown

	cases  []model.Case
	filter model.CaseFilter

	// gen guards against out-of-order response arrival: a response is
	// applied only while its generation is still the latest.
	gen int64
}

func newCaseList(a *App) *caseList {
	cl := &caseList{
		app: a,
		filter: model.CaseFilter{
			SortBy: model.SortByDueDate,
			Order:  model.OrderAsc,
		},
	}
	cl.setupLayout()
	return cl
}

func (cl *caseList) setupLayout() {
	theme := cl.app.theme

	// Filter dropdowns. Handlers are attached after the initial option is
	// set so mounting does not fire a duplicate fetch.
	cl.statusDrop = tview.NewDropDown().
		SetLabel("Status: ").
		SetOptions(statusFilterOptions, nil)
	cl.statusDrop.SetCurrentOption(0)
	cl.statusDrop.SetSelectedFunc(func(text string, index int) {
		if index == 0 {
			cl.setFilter(model.CaseFilter{Status: "", SortBy: cl.filter.SortBy, Order: cl.filter.Order})
		} else {
			cl.setFilter(model.CaseFilter{Status: text, SortBy: cl.filter.SortBy, Order: cl.filter.Order})
		}
	})

	cl.sortDrop = tview.NewDropDown().
		SetLabel("Sort by: ").
		SetOptions([]string{"Due Date", "Invoice Date"}, nil)
	cl.sortDrop.SetCurrentOption(0)
	cl.sortDrop.SetSelectedFunc(func(text string, index int) {
		sortBy := model.SortByDueDate
		if index == 1 {
			sortBy = model.SortByInvoiceDate
		}
		cl.setFilter(model.CaseFilter{Status: cl.filter.Status, SortBy: sortBy, Order: cl.filter.Order})
	})

	cl.orderDrop = tview.NewDropDown().
		SetLabel("Order: ").
		SetOptions([]string{"Ascending", "Descending"}, nil)
	cl.orderDrop.SetCurrentOption(0)
	cl.orderDrop.SetSelectedFunc(func(text string, index int) {
		order := model.OrderAsc
		if index == 1 {
			order = model.OrderDesc
		}
		cl.setFilter(model.CaseFilter{Status: cl.filter.Status, SortBy: cl.filter.SortBy, Order: order})
	})

	for _, d := range []*tview.DropDown{cl.statusDrop, cl.sortDrop, cl.orderDrop} {
		d.SetFieldBackgroundColor(theme.SelectionBg)
		d.SetFieldTextColor(theme.TextPrimary)
		d.SetLabelColor(theme.TextMuted)
	}

	cl.filterBar = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(cl.statusDrop, 0, 1, false).
		AddItem(cl.sortDrop, 0, 1, false).
		AddItem(cl.orderDrop, 0, 1, false)
	cl.filterBar.SetBackgroundColor(theme.Surface)

	cl.table = tview.NewTable()
	cl.table.SetSelectable(true, false)
	cl.table.SetSelectedStyle(tcell.StyleDefault.
		Background(theme.SelectionBg).
		Foreground(theme.SelectionFg))
	// Pin header row so it stays visible when selecting/scrolling.
	cl.table.SetFixed(1, 0)
	cl.app.frame(cl.table, " Recovery Cases ")
	cl.table.SetSelectedFunc(func(row, col int) {
		if row > 0 && row-1 < len(cl.cases) {
			cl.app.ShowCaseDetail(cl.cases[row-1].ID)
		}
	})
	cl.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyRune:
			switch event.Rune() {
			case 'r', 'R':
				cl.reload()
				return nil
			case 'f':
				cl.app.app.SetFocus(cl.statusDrop)
				cl.app.setStatus("[%s]Filters: Status / Sort by / Order (Tab to move, Enter to pick)[-]", cl.app.theme.TagAccent)
				return nil
			}
		case tcell.KeyTab:
			cl.app.app.SetFocus(cl.statusDrop)
			return nil
		}
		return event
	})

	// Move focus between dropdowns with Tab, back to the table with Esc.
	focusRing := []*tview.DropDown{cl.statusDrop, cl.sortDrop, cl.orderDrop}
	for i, d := range focusRing {
		next := focusRing[(i+1)%len(focusRing)]
		drop := d
		drop.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			switch event.Key() {
			case tcell.KeyTab:
				cl.app.app.SetFocus(next)
				return nil
			case tcell.KeyEsc:
				cl.app.app.SetFocus(cl.table)
				cl.app.showKeyHints()
				return nil
			}
			return event
		})
	}

	cl.emptyView = tview.NewTextView()
	cl.emptyView.SetDynamicColors(true)
	cl.emptyView.SetTextAlign(tview.AlignCenter)
	cl.app.frame(cl.emptyView, " Recovery Cases ")

	cl.body = tview.NewPages()
	cl.body.AddPage("table", cl.table, true, true)
	cl.body.AddPage("empty", cl.emptyView, true, false)

	cl.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(cl.filterBar, 1, 0, false).
		AddItem(cl.body, 0, 1, true)
	cl.layout.SetBackgroundColor(theme.Bg)
}

// setFilter records the new filter set and triggers the single re-fetch
// that every filter change is contracted to produce.
func (cl *caseList) setFilter(f model.CaseFilter) {
	cl.filter = f
	cl.reload()
}

// reload starts an asynchronous fetch for the current filter set. The
// bumped generation invalidates any response still in flight.
func (cl *caseList) reload() {
	gen := atomic.AddInt64(&cl.gen, 1)
	cl.app.setStatus("[%s]Loading cases...[-]", cl.app.theme.TagWarning)
	go func() {
		cases, err := cl.app.api.ListCases(cl.app.ctx, cl.filter)
		cl.app.QueueUpdateDraw(func() {
			cl.apply(gen, cases, err)
		})
	}()
}

// apply renders a fetch result, discarding it when a newer fetch has been
// started since. This closes the slow-response-overtakes-fast race that
// rapid filter changes can otherwise produce.
func (cl *caseList) apply(gen int64, cases []model.Case, err error) {
	if gen != atomic.LoadInt64(&cl.gen) {
		cl.app.logger.Printf("case list: dropping stale response (gen %d)", gen)
		return
	}
	theme := cl.app.theme
	if err != nil {
		msg := api.ErrorMessage(err, "Failed to fetch cases")
		cl.emptyView.SetText("\n[" + theme.TagError + "]" + msg + "[-]\n\n[" + theme.TagMuted + "]r: retry   n: create case   c: create client[-]")
		cl.body.SwitchToPage("empty")
		cl.app.setStatus("[%s]%s[-]", theme.TagError, msg)
		return
	}

	cl.cases = cases
	if len(cases) == 0 {
		cl.emptyView.SetText("\n[" + theme.TagMuted + "]No cases found. Create a new case to get started.[-]\n\n[" + theme.TagAccent + "]n[-][" + theme.TagMuted + "]: create case[-]")
		cl.body.SwitchToPage("empty")
		cl.app.setStatus("[%s]0 cases[-]", theme.TagMuted)
		return
	}

	cl.renderTable()
	cl.body.SwitchToPage("table")
	cl.app.setStatus("[%s]Loaded %d cases[-] | [%s]Enter[-]:details [%s]f[-]:filters [%s]r[-]:refresh",
		theme.TagSuccess, len(cases), theme.TagAccent, theme.TagAccent, theme.TagAccent)
}

func (cl *caseList) renderTable() {
	theme := cl.app.theme
	cl.table.Clear()

	headers := []string{"Client Name", "Invoice Number", "Invoice Amount", "Due Date", "Status"}
	for col, header := range headers {
		cl.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(theme.TableHeader).
			SetBackgroundColor(theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}

	for i, c := range cl.cases {
		row := i + 1
		zebra := theme.TableZebra1
		if i%2 == 1 {
			zebra = theme.TableZebra2
		}

		badge := format.StatusClass(c.Status)
		cells := []struct {
			text  string
			color tcell.Color
		}{
			{c.Client.ClientName, theme.TextPrimary},
			{c.InvoiceNumber, theme.Accent},
			{format.Currency(c.InvoiceAmount), theme.TextPrimary},
			{format.DateShort(c.DueDate), theme.TextPrimary},
			{string(c.Status), theme.statusTcell(badge)},
		}
		for col, cell := range cells {
			cl.table.SetCell(row, col, tview.NewTableCell(cell.text).
				SetTextColor(cell.color).
				SetBackgroundColor(zebra))
		}
	}

	if cl.table.GetRowCount() > 1 {
		cl.table.Select(1, 0)
	}
}
