package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/bus"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/status"
	"github.com/matheus3301/outreach/internal/tui/keys"
	"github.com/matheus3301/outreach/internal/tui/model"
	"github.com/matheus3301/outreach/internal/tui/ui"
	"github.com/matheus3301/outreach/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Page names.
const (
	pageAuth      = "auth"
	pageCompanies = "companies"
	pageDetail    = "detail"
	pageHelp      = "help"
	pageLoader    = "loader"
	pageConfirm   = "confirm"
)

const (
	headerHeight = 6
	promptHeight = 3
	menuRows     = 5
)

// Options are the display settings of the shell.
type Options struct {
	Profile string
	Backend string
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	root     *tview.Flex
	pages    *ui.Pages
	vm       *model.ViewModel
	bus      *bus.Bus
	cat      *i18n.Catalog
	logger   *zap.Logger
	registry *keys.Registry
	theme    *ui.Theme
	opts     Options

	account   *ui.AccountInfo
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	flashBar  *ui.FlashBar
	prompt    *ui.Prompt
	statusBar *views.StatusBar
	auth      *views.AuthView
	sidebar   *views.Sidebar
	list      *views.CompanyList
	detail    *views.CompanyDetail
	help      *views.HelpView
	loader    *views.Loader
	confirm   *views.Confirm

	promptShown bool
	lastTab     model.Tab
	pending     atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application around vm.
func NewApp(vm *model.ViewModel, b *bus.Bus, logger *zap.Logger, opts Options) *App {
	ctx, cancel := context.WithCancel(context.Background())
	if logger == nil {
		logger = zap.NewNop()
	}
	theme := ui.DefaultTheme()
	cat := vm.Catalog()

	a := &App{
		app:       tview.NewApplication(),
		pages:     ui.NewPages(),
		vm:        vm,
		bus:       b,
		cat:       cat,
		logger:    logger,
		registry:  keys.NewRegistry(),
		theme:     theme,
		opts:      opts,
		account:   ui.NewAccountInfo(theme),
		menu:      ui.NewMenu(theme),
		crumbs:    ui.NewCrumbs(theme),
		flashBar:  ui.NewFlashBar(theme),
		prompt:    ui.NewPrompt(theme),
		statusBar: views.NewStatusBar(),
		auth:      views.NewAuthView(theme, cat),
		sidebar:   views.NewSidebar(theme),
		list:      views.NewCompanyList(theme),
		detail:    views.NewCompanyDetail(theme, cat),
		help:      views.NewHelpView(theme),
		loader:    views.NewLoader(theme),
		confirm:   views.NewConfirm(theme, cat),
		lastTab:   model.TabLetter,
		ctx:       ctx,
		cancel:    cancel,
	}

	a.statusBar.SetProfile(opts.Profile)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "Quit/Back", Visible: true,
		Handler: a.back,
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: ':', Key: tcell.KeyRune,
		Description: "Command", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptCommand) },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "Help", Visible: true,
		Handler: a.showHelp,
	})

	a.registry.AddView(pageCompanies, &keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Description: "AI search", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptSearch) },
	})
	a.registry.AddView(pageCompanies, &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "Reload", Visible: true,
		Handler: a.reload,
	})
	a.registry.AddView(pageCompanies, &keys.Action{
		Rune: 'S', Key: tcell.KeyRune,
		Description: "Send to all new", Visible: true,
		Handler: a.sendAll,
	})
	for n := 0; n <= len(status.All()); n++ {
		n := n
		a.registry.AddView(pageCompanies, &keys.Action{
			Rune: rune('0' + n), Key: tcell.KeyRune,
			Label: "0-7", Description: "Status filter",
			Visible: n == 0, Numeric: true,
			Handler: func() { a.vm.SetFilter(views.FilterForRow(n)) },
		})
	}

	a.registry.AddView(pageDetail, &keys.Action{
		Key:         tcell.KeyTab,
		Description: "Letter/Chat", Visible: true,
		Handler: a.toggleTab,
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'g', Key: tcell.KeyRune,
		Description: "Generate", Visible: true,
		Handler: a.generate,
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 's', Key: tcell.KeyRune,
		Description: "Send letter", Visible: true,
		Handler: a.sendEmail,
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 't', Key: tcell.KeyRune,
		Description: "Status", Visible: true,
		Handler: func() { a.app.SetFocus(a.detail.StatusDropDown()) },
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'R', Key: tcell.KeyRune,
		Description: "Simulate reply", Visible: true,
		Handler: a.simulateReply,
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'i', Key: tcell.KeyRune,
		Description: "Compose", Visible: true,
		Handler: a.compose,
	})
}

func (a *App) setupCallbacks() {
	a.auth.SetOnLogin(func(email, password string) {
		a.do("login", func(ctx context.Context) error {
			return a.vm.Login(ctx, email, password)
		})
	})
	a.auth.SetOnRegister(func(reg api.Registration) {
		a.do("register", func(ctx context.Context) error {
			return a.vm.Register(ctx, reg)
		})
	})

	a.sidebar.SetOnFilter(func(s *status.Status) {
		a.vm.SetFilter(s)
		a.app.SetFocus(a.list)
	})

	a.list.SetSelectedFunc(func(_, _ int) {
		if id := a.list.SelectedID(); id != 0 {
			a.open(id)
		}
	})

	a.detail.SetOnGenerate(a.generate)
	a.detail.SetOnSend(a.sendEmail)
	a.detail.SetOnSimulate(a.simulateReply)
	a.detail.SetOnStatus(func(s status.Status) {
		id := a.detail.View().Company.ID
		a.do("set status", func(ctx context.Context) error {
			return a.vm.SetStatus(ctx, id, s)
		})
	})
	a.detail.Thread().SetOnDraft(a.vm.SetDraft)
	a.detail.Thread().SetOnSend(func() {
		id := a.detail.View().Company.ID
		a.do("send message", func(ctx context.Context) error {
			return a.vm.SendChatMessage(ctx, id)
		})
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		if mode == ui.PromptSearch {
			a.do("search", func(ctx context.Context) error {
				return a.vm.Search(ctx, text)
			})
			return
		}
		a.runCommand(ParseCommand(text))
	})
	a.prompt.SetOnCancel(a.hidePrompt)

	a.pages.SetOnChange(func(stack []string) {
		labels := make([]string, 0, len(stack))
		for _, name := range stack {
			if c := a.component(name); c != nil {
				labels = append(labels, c.Name())
			}
		}
		a.crumbs.Update(labels)
		a.menu.Update(a.hints(a.pages.Current()), menuRows)
	})
}

func (a *App) setupLayout() {
	header := tview.NewFlex().
		AddItem(a.account, 40, 0, false).
		AddItem(a.menu, 0, 1, false).
		AddItem(ui.NewLogo(a.theme), 40, 0, false)

	companies := tview.NewFlex().
		AddItem(a.sidebar, 34, 0, false).
		AddItem(a.list, 0, 1, true)

	a.pages.AddPage(pageAuth, a.auth, true, false)
	a.pages.AddPage(pageCompanies, companies, true, false)
	a.pages.AddPage(pageDetail, a.detail, true, false)
	a.pages.AddPage(pageHelp, a.help, true, false)
	a.pages.AddPage(pageLoader, a.loader, true, false)
	a.pages.AddPage(pageConfirm, a.confirm, true, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, headerHeight, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetInputCapture(a.capture)

	a.pages.Reset(pageAuth)
}

func (a *App) capture(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		return event
	}
	if a.pages.OverlayShown(pageConfirm) {
		return event
	}
	if a.pages.OverlayShown(pageLoader) {
		return nil
	}
	if a.promptShown {
		return event
	}

	current := a.pages.Current()
	focused := a.app.GetFocus()

	if event.Key() == tcell.KeyEscape {
		switch {
		case current == pageDetail && focused != a.detail.Actions() && focused != a.detail.Thread().Messages():
			a.focusPage()
			return nil
		case current == pageDetail || current == pageHelp:
			a.back()
			return nil
		}
		return event
	}

	// Let text input widgets handle all keys normally.
	switch f := focused.(type) {
	case *tview.InputField:
		return event
	case *tview.DropDown:
		if f.IsOpen() || event.Key() != tcell.KeyTab {
			return event
		}
	}

	if current == pageAuth {
		return event
	}

	if a.registry.HandleEvent(current, event) {
		return nil
	}

	return event
}

func (a *App) component(page string) ui.Component {
	switch page {
	case pageAuth:
		return a.auth
	case pageCompanies:
		return a.list
	case pageDetail:
		return a.detail
	case pageHelp:
		return a.help
	}
	return nil
}

func (a *App) hints(page string) []ui.MenuHint {
	if page == pageAuth {
		return a.auth.Hints()
	}
	return a.registry.Hints(page)
}

// do runs op off the event loop. Outcomes reach the screen through bus
// events; errors are already surfaced as flash messages.
func (a *App) do(name string, op func(ctx context.Context) error) {
	go func() {
		if err := op(a.ctx); err != nil && a.ctx.Err() == nil {
			a.logger.Debug("operation failed", zap.String("op", name), zap.Error(err))
		}
	}()
}

func (a *App) open(id int64) {
	a.vm.Open(a.ctx, id)
}

func (a *App) openID() int64 {
	return a.detail.View().Company.ID
}

func (a *App) reload() {
	a.do("reload", a.vm.LoadCompanies)
}

func (a *App) generate() {
	id := a.openID()
	a.do("generate", func(ctx context.Context) error {
		return a.vm.Generate(ctx, id)
	})
}

func (a *App) sendEmail() {
	id := a.openID()
	a.do("send email", func(ctx context.Context) error {
		return a.vm.SendEmail(ctx, id)
	})
}

func (a *App) simulateReply() {
	id := a.openID()
	a.do("simulate reply", func(ctx context.Context) error {
		return a.vm.SimulateReply(ctx, id)
	})
}

func (a *App) sendAll() {
	a.do("send all", func(ctx context.Context) error {
		err := a.vm.SendToAllNew(ctx, a.ask)
		if err == model.ErrNotConfirmed {
			return nil
		}
		return err
	})
}

// ask shows the confirmation overlay and blocks until it is answered. It
// must not run on the event loop.
func (a *App) ask(question string) bool {
	answer := make(chan bool, 1)
	a.app.QueueUpdateDraw(func() {
		a.confirm.Ask(question, func(yes bool) {
			a.pages.HideOverlay(pageConfirm)
			a.focusPage()
			answer <- yes
		})
		a.pages.ShowOverlay(pageConfirm)
		a.app.SetFocus(a.confirm)
	})
	select {
	case yes := <-answer:
		return yes
	case <-a.ctx.Done():
		return false
	}
}

func (a *App) toggleTab() {
	if a.detail.View().Tab == model.TabChat {
		a.vm.SwitchTab(model.TabLetter)
	} else {
		a.vm.SwitchTab(model.TabChat)
	}
}

func (a *App) compose() {
	if a.detail.View().Tab != model.TabChat {
		a.vm.SwitchTab(model.TabChat)
	}
	a.app.SetFocus(a.detail.Thread().Composer())
}

func (a *App) showPrompt(mode ui.PromptMode) {
	title := "command"
	if mode == ui.PromptSearch {
		title = a.cat.Text(i18n.LabelCategory)
	}
	a.prompt.Activate(mode, title)
	a.promptShown = true
	a.root.ResizeItem(a.prompt, promptHeight, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.promptShown = false
	a.root.ResizeItem(a.prompt, 0, 0)
	a.focusPage()
}

func (a *App) showHelp() {
	a.pages.Push(pageHelp)
	a.app.SetFocus(a.help)
}

// back leaves the current page. On the main pages it quits.
func (a *App) back() {
	switch a.pages.Current() {
	case pageDetail:
		a.vm.Close()
	case pageHelp:
		a.pages.Pop()
		a.focusPage()
	default:
		a.Stop()
	}
}

// focusPage gives focus to the primary widget of the current page.
func (a *App) focusPage() {
	switch a.pages.Current() {
	case pageAuth:
		a.app.SetFocus(a.auth)
	case pageCompanies:
		a.app.SetFocus(a.list)
	case pageDetail:
		if a.detail.View().Tab == model.TabChat {
			a.app.SetFocus(a.detail.Thread().Messages())
		} else {
			a.app.SetFocus(a.detail.Actions())
		}
	case pageHelp:
		a.app.SetFocus(a.help)
	}
}

// render redraws every widget from a state snapshot. It runs on the event
// loop.
func (a *App) render() {
	a.pending.Store(false)
	s := a.vm.Snapshot()

	if !s.SignedIn() {
		if a.pages.Current() != pageAuth {
			a.pages.Reset(pageAuth)
			a.app.SetFocus(a.auth)
		}
		a.auth.SetError(s.AuthError)
		a.auth.SetBusy(s.Busy[model.ActLogin] || s.Busy[model.ActRegister])
	} else if a.pages.Current() == pageAuth {
		a.auth.Reset()
		a.pages.Reset(pageCompanies)
		a.app.SetFocus(a.list)
	}

	a.list.Update(model.VisibleCards(s), a.filterLabel(s.Filter), a.cat)
	a.sidebar.Update(model.Counts(s.Companies), s.Filter, a.cat)
	a.renderDetail(s)

	if s.Loader != "" {
		a.loader.SetMessage(s.Loader)
		if !a.pages.OverlayShown(pageLoader) {
			a.pages.ShowOverlay(pageLoader)
			a.app.SetFocus(a.loader)
		}
	} else if a.pages.OverlayShown(pageLoader) {
		a.pages.HideOverlay(pageLoader)
		a.focusPage()
	}

	data := ui.AccountData{Profile: a.opts.Profile, Backend: a.opts.Backend}
	if s.User != nil {
		data.Name = s.User.Name
		data.Email = s.User.Email
		data.SendEmail = s.User.SendEmail
		data.Companies = len(s.Companies)
		a.statusBar.SetAccount(s.User.Email)
	} else {
		a.statusBar.SetAccount("")
	}
	a.account.Update(data)
	a.statusBar.SetView(a.filterLabel(s.Filter))
	a.renderScope(s)
	a.statusBar.SetBusy(len(s.Busy) > 0)
	a.menu.Update(a.hints(a.pages.Current()), menuRows)
	a.renderFlash()
}

func (a *App) renderDetail(s model.State) {
	v, ok := model.ViewDetail(s)
	if !ok {
		if a.pages.Current() == pageDetail {
			a.pages.PopTo(pageCompanies)
			a.app.SetFocus(a.list)
		}
		return
	}
	a.detail.Update(v)
	a.detail.Thread().SetDraft(s.Draft)

	switch a.pages.Current() {
	case pageCompanies:
		a.pages.Push(pageDetail)
		a.lastTab = v.Tab
		a.focusPage()
	case pageDetail:
		if v.Tab != a.lastTab {
			a.lastTab = v.Tab
			a.focusPage()
		}
	}
}

func (a *App) renderFlash() {
	msg, failure := a.vm.Flash.Current()
	level := ui.FlashInfo
	if failure {
		level = ui.FlashErr
	}
	a.flashBar.Update(msg, level)
}

func (a *App) renderScope(s model.State) {
	if !s.SignedIn() {
		a.crumbs.SetScope()
		return
	}
	company := ""
	if v, ok := model.ViewDetail(s); ok {
		company = v.Company.Name
	}
	a.crumbs.SetScope(a.filterLabel(s.Filter), company)
}

func (a *App) filterLabel(f *status.Status) string {
	if f == nil {
		return a.cat.AllLabel
	}
	return a.cat.StatusLabel(*f)
}

// queueRender schedules one render for any burst of state changes.
func (a *App) queueRender() {
	if a.pending.CompareAndSwap(false, true) {
		a.app.QueueUpdateDraw(a.render)
	}
}

func (a *App) watch(events <-chan bus.Event) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case evt := <-events:
			a.logger.Debug("event", zap.String("kind", evt.Kind))
			a.queueRender()
		case <-ticker.C:
			a.app.QueueUpdateDraw(func() {
				a.renderFlash()
				a.statusBar.Refresh()
			})
		case <-a.ctx.Done():
			return
		}
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	events, unsubscribe := a.bus.Subscribe(bus.NSAll, 256)
	defer unsubscribe()

	a.render()
	go a.watch(events)
	go func() {
		if a.vm.Resume(a.ctx) {
			a.logger.Info("session resumed")
		}
		a.queueRender()
	}()

	err := a.app.Run()
	a.cancel()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
