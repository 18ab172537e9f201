// Package ui implements the terminal screens of the recovery console:
// the case list, the case detail with its edit mode, and the two creation
// forms. Each screen owns its fetched data and form state exclusively;
// navigation replaces the current screen with a freshly mounted one, so
// every mount re-fetches from the backend.
package ui

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/recoverydesk/recovery-console/internal/api"
)

// App is the terminal application shell: the tview event loop, the shared
// status bar, and the page container the screens are mounted into.
type App struct {
	app    *tview.Application
	api    *api.Client
	logger *log.Logger

	pages     *tview.Pages
	statusBar *tview.TextView

	theme     Theme
	themeName string

	ctx    context.Context
	cancel context.CancelFunc

	// queueUpdate schedules a closure onto the UI goroutine. It defaults to
	// tview's QueueUpdateDraw; tests swap in a synchronous queue.
	queueUpdate func(func())

	running bool
}

// NewApp creates the application shell and mounts the case list as the
// initial screen.
func NewApp(ctx context.Context, apiClient *api.Client, logger *log.Logger) *App {
	return newApp(ctx, apiClient, logger, nil)
}

func newApp(ctx context.Context, apiClient *api.Client, logger *log.Logger, queue func(func())) *App {
	if logger == nil {
		logger = log.New(log.Writer(), "[UI] ", log.LstdFlags)
	}

	uiCtx, cancel := context.WithCancel(ctx)

	a := &App{
		app:         tview.NewApplication(),
		api:         apiClient,
		logger:      logger,
		theme:       themeDark(),
		themeName:   "dark",
		ctx:         uiCtx,
		cancel:      cancel,
		queueUpdate: queue,
	}
	if a.queueUpdate == nil {
		a.queueUpdate = func(f func()) { a.app.QueueUpdateDraw(f) }
	}

	a.pages = tview.NewPages()

	a.statusBar = tview.NewTextView()
	a.statusBar.SetDynamicColors(true)
	a.showKeyHints()

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)
	root.SetBackgroundColor(a.theme.Bg)

	a.app.SetRoot(root, true)
	a.setupKeybindings()

	a.ShowCaseList()

	return a
}

// Start runs the event loop until the application stops or one of the
// contexts is cancelled.
func (a *App) Start(ctx context.Context) error {
	a.logger.Println("Starting TUI application")

	go func() {
		select {
		case <-ctx.Done():
			a.logger.Println("External context cancelled, stopping TUI")
		case <-a.ctx.Done():
			a.logger.Println("UI context cancelled, stopping TUI")
		}
		a.cancel()
		a.app.Stop()
	}()

	a.running = true
	err := a.app.Run()
	a.running = false
	a.logger.Printf("app.Run() returned with error: %v", err)
	return err
}

// Stop stops the TUI application.
func (a *App) Stop() {
	a.logger.Println("Stopping TUI application")
	a.running = false
	a.cancel()
	a.app.Stop()
}

// setupKeybindings installs the global key handler. Letter shortcuts are
// suppressed while an input widget has focus so typing is never hijacked.
func (a *App) setupKeybindings() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			a.app.Stop()
			return nil
		case tcell.KeyRune:
			if f := a.app.GetFocus(); f != nil {
				switch f.(type) {
				case *tview.InputField, *tview.TextArea, *tview.DropDown, *tview.Button:
					return event
				}
			}
			switch event.Rune() {
			case 'q', 'Q':
				a.app.Stop()
				return nil
			case 't':
				a.cycleTheme()
				return nil
			case 'L':
				a.ShowCaseList()
				return nil
			case 'n':
				a.ShowCaseCreate()
				return nil
			case 'c':
				a.ShowClientCreate()
				return nil
			}
		}
		return event
	})
}

// cycleTheme toggles between the dark and light palettes. Screens pick the
// new palette up on their next mount; the status bar switches immediately.
func (a *App) cycleTheme() {
	if a.themeName == "dark" {
		a.themeName = "light"
		a.theme = themeLight()
	} else {
		a.themeName = "dark"
		a.theme = themeDark()
	}
	a.setStatus("[%s]Theme: %s[-]", a.theme.TagAccent, a.themeName)
}

// mount replaces the current screen. AddAndSwitchToPage overwrites any
// previous page with the same name, which drops the old screen's state.
func (a *App) mount(name string, primitive tview.Primitive) {
	a.pages.AddAndSwitchToPage(name, primitive, true)
}

// ShowCaseList mounts a fresh case list screen and triggers its fetch.
func (a *App) ShowCaseList() {
	cl := newCaseList(a)
	a.mount("case-list", cl.layout)
	a.app.SetFocus(cl.table)
	cl.reload()
}

// ShowCaseDetail mounts the detail screen for one case.
func (a *App) ShowCaseDetail(id int64) {
	cd := newCaseDetail(a, id)
	a.mount("case-detail", cd.layout)
	a.app.SetFocus(cd.viewText)
	cd.fetch()
}

// ShowClientCreate mounts the client creation form.
func (a *App) ShowClientCreate() {
	cc := newClientCreate(a)
	a.mount("client-create", cc.layout)
	a.app.SetFocus(cc.form)
}

// ShowCaseCreate mounts the case creation screen, which starts by fetching
// the client list.
func (a *App) ShowCaseCreate() {
	cc := newCaseCreate(a)
	a.mount("case-create", cc.layout)
	cc.loadClients()
}

// setStatus updates the status bar. Safe to call from the event goroutine;
// async work must route through QueueUpdateDraw first.
func (a *App) setStatus(format string, args ...interface{}) {
	a.statusBar.SetText(fmt.Sprintf(format, args...))
}

// showKeyHints restores the default status bar content.
func (a *App) showKeyHints() {
	a.setStatus("[%s]Recovery Console[-] | [%s]q[-]:quit [%s]L[-]:cases [%s]n[-]:new case [%s]c[-]:new client [%s]t[-]:theme",
		a.theme.TagWarning, a.theme.TagAccent, a.theme.TagAccent, a.theme.TagAccent, a.theme.TagAccent, a.theme.TagAccent)
}

// QueueUpdateDraw schedules f on the UI goroutine.
func (a *App) QueueUpdateDraw(f func()) {
	a.queueUpdate(f)
}

// frame applies the standard border/title chrome used by the screens. The
// border lights up while the widget holds focus.
func (a *App) frame(b interface {
	SetBorder(show bool) *tview.Box
	SetTitle(title string) *tview.Box
	SetTitleAlign(align int) *tview.Box
	SetBorderColor(color tcell.Color) *tview.Box
	SetBackgroundColor(color tcell.Color) *tview.Box
	SetFocusFunc(callback func()) *tview.Box
	SetBlurFunc(callback func()) *tview.Box
}, title string) {
	b.SetBorder(true)
	b.SetTitle(title)
	b.SetTitleAlign(tview.AlignLeft)
	b.SetBorderColor(a.theme.Border)
	b.SetBackgroundColor(a.theme.Surface)
	b.SetFocusFunc(func() { b.SetBorderColor(a.theme.FocusBorder) })
	b.SetBlurFunc(func() { b.SetBorderColor(a.theme.Border) })
}
