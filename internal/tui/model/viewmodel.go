package model

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/bus"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/status"
	"go.uber.org/zap"
)

// MinPasswordLen is the shortest password accepted at registration.
const MinPasswordLen = 6

// Backend is the subset of the API client the view model drives.
type Backend interface {
	Me(ctx context.Context) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, reg api.Registration) (*api.AuthResult, error)
	ListCompanies(ctx context.Context) ([]api.Company, error)
	Search(ctx context.Context, category string) (*api.SearchResult, error)
	SendAll(ctx context.Context) (string, error)
	GenerateEmail(ctx context.Context, id int64) (*api.Letter, error)
	SendEmail(ctx context.Context, id int64) (string, error)
	UpdateStatus(ctx context.Context, id int64, s status.Status) error
	ListMessages(ctx context.Context, companyID int64) ([]api.Message, error)
	PostMessage(ctx context.Context, companyID int64, text string, dir api.Direction) error
	SimulateReply(ctx context.Context, companyID int64) (*api.ReplyResult, error)
}

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// ViewModel owns the client State and implements every user operation.
// Operations block on the network and are safe to call from any goroutine;
// the UI runs them off its event loop and re-renders on bus events.
type ViewModel struct {
	mu    sync.Mutex
	state State

	backend Backend
	tokens  TokenStore
	bus     *bus.Bus
	cat     *i18n.Catalog
	logger  *zap.Logger

	Flash Flash

	// chats tracks chat loads started in the background by Open.
	chats sync.WaitGroup
}

// NewViewModel returns a signed-out view model.
func NewViewModel(backend Backend, tokens TokenStore, b *bus.Bus, cat *i18n.Catalog, logger *zap.Logger) *ViewModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewModel{
		state:   State{Busy: make(map[Action]bool)},
		backend: backend,
		tokens:  tokens,
		bus:     b,
		cat:     cat,
		logger:  logger,
	}
}

// Catalog returns the label catalog in use.
func (vm *ViewModel) Catalog() *i18n.Catalog {
	return vm.cat
}

// Snapshot returns a copy of the current state.
func (vm *ViewModel) Snapshot() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state.clone()
}

// Wait blocks until background chat loads have finished.
func (vm *ViewModel) Wait() {
	vm.chats.Wait()
}

func (vm *ViewModel) emit(kind string, payload any) {
	if vm.bus != nil {
		vm.bus.Emit(kind, payload)
	}
}

func (vm *ViewModel) flash(msg string) {
	vm.Flash.Set(msg, FlashDuration)
	vm.emit(bus.FlashRaised, msg)
}

func (vm *ViewModel) flashErr(msg string) {
	vm.Flash.Fail(msg, FlashDuration)
	vm.emit(bus.FlashRaised, msg)
}

// begin marks a as in flight. It returns false when a is already running,
// in which case the caller must do nothing.
func (vm *ViewModel) begin(a Action) bool {
	vm.mu.Lock()
	if vm.state.Busy[a] {
		vm.mu.Unlock()
		return false
	}
	vm.state.Busy[a] = true
	vm.mu.Unlock()
	vm.emit(bus.BusyChanged, a)
	return true
}

func (vm *ViewModel) end(a Action) {
	vm.mu.Lock()
	delete(vm.state.Busy, a)
	vm.mu.Unlock()
	vm.emit(bus.BusyChanged, a)
}

func (vm *ViewModel) setLoader(text string) {
	vm.mu.Lock()
	vm.state.Loader = text
	vm.mu.Unlock()
	vm.emit(bus.BusyLoader, text)
}

// Resume signs in with the stored token, if any. Any failure leaves the
// client signed out; there is no retry.
func (vm *ViewModel) Resume(ctx context.Context) bool {
	token, err := vm.tokens.Token()
	if err != nil {
		vm.logger.Warn("read stored token", zap.Error(err))
	}
	if token == "" {
		vm.emit(bus.AuthSignedOut, nil)
		return false
	}
	user, err := vm.backend.Me(ctx)
	if err != nil {
		vm.logger.Info("stored token rejected", zap.Error(err))
		vm.emit(bus.AuthSignedOut, nil)
		return false
	}
	vm.signIn(ctx, user)
	return true
}

// Login validates the credentials locally, then exchanges them for a token.
func (vm *ViewModel) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return vm.authFailed(&ValidationError{Msg: vm.cat.Text(i18n.FillAllFields)}, "")
	}
	if !vm.begin(ActLogin) {
		return nil
	}
	defer vm.end(ActLogin)

	res, err := vm.backend.Login(ctx, email, password)
	if err != nil {
		return vm.authFailed(err, vm.cat.Text(i18n.LoginFailed))
	}
	return vm.acceptAuth(ctx, res)
}

// Register validates the form locally, then creates the account.
func (vm *ViewModel) Register(ctx context.Context, reg api.Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.SendEmail = strings.TrimSpace(reg.SendEmail)
	if reg.Name == "" || reg.Email == "" || reg.SendEmail == "" || reg.Password == "" {
		return vm.authFailed(&ValidationError{Msg: vm.cat.Text(i18n.FillAllFields)}, "")
	}
	if utf8.RuneCountInString(reg.Password) < MinPasswordLen {
		return vm.authFailed(&ValidationError{Msg: vm.cat.Text(i18n.PasswordTooShort)}, "")
	}
	if !vm.begin(ActRegister) {
		return nil
	}
	defer vm.end(ActRegister)

	res, err := vm.backend.Register(ctx, reg)
	if err != nil {
		return vm.authFailed(err, vm.cat.Text(i18n.RegisterFailed))
	}
	return vm.acceptAuth(ctx, res)
}

func (vm *ViewModel) authFailed(err error, fallback string) error {
	msg := UserMessage(vm.cat, err, fallback)
	vm.mu.Lock()
	vm.state.AuthError = msg
	vm.mu.Unlock()
	vm.emit(bus.AuthFailed, msg)
	return err
}

func (vm *ViewModel) acceptAuth(ctx context.Context, res *api.AuthResult) error {
	if err := vm.tokens.SetToken(res.Token); err != nil {
		vm.logger.Error("persist token", zap.Error(err))
		return vm.authFailed(err, "")
	}
	user := res.User
	vm.signIn(ctx, &user)
	return nil
}

func (vm *ViewModel) signIn(ctx context.Context, user *api.User) {
	vm.mu.Lock()
	vm.state.User = user
	vm.state.AuthError = ""
	vm.mu.Unlock()
	vm.logger.Info("signed in", zap.Int64("user_id", user.ID))
	vm.emit(bus.AuthSignedIn, user.Name)
	_ = vm.LoadCompanies(ctx)
}

// Logout forgets the token and every piece of in-memory state.
func (vm *ViewModel) Logout() {
	if err := vm.tokens.ClearToken(); err != nil {
		vm.logger.Warn("clear token", zap.Error(err))
	}
	vm.mu.Lock()
	vm.state = State{Busy: make(map[Action]bool)}
	vm.mu.Unlock()
	vm.Flash.Clear()
	vm.logger.Info("signed out")
	vm.emit(bus.AuthSignedOut, nil)
}

// LoadCompanies replaces the store with the backend list. On failure the
// previous list stays in place.
func (vm *ViewModel) LoadCompanies(ctx context.Context) error {
	list, err := vm.backend.ListCompanies(ctx)
	if err != nil {
		vm.logger.Warn("load companies", zap.Error(err))
		vm.flashErr(vm.cat.Text(i18n.LoadFailed))
		return err
	}
	vm.mu.Lock()
	vm.state.Companies = list
	vm.state.Loaded = true
	vm.mu.Unlock()
	vm.emit(bus.CompaniesLoaded, len(list))
	return nil
}

// SetFilter narrows the visible cards to s; nil shows all of them.
func (vm *ViewModel) SetFilter(s *status.Status) {
	vm.mu.Lock()
	if s == nil {
		vm.state.Filter = nil
	} else {
		f := *s
		vm.state.Filter = &f
	}
	vm.mu.Unlock()
	vm.emit(bus.FilterChanged, s)
}

// Open shows the detail modal for id on the letter tab and starts loading
// its chat in the background. It reports false when id is not in the store.
func (vm *ViewModel) Open(ctx context.Context, id int64) bool {
	vm.mu.Lock()
	if vm.state.indexOf(id) < 0 {
		vm.mu.Unlock()
		return false
	}
	if vm.state.Chat.CompanyID != id {
		vm.state.Chat = Chat{CompanyID: id}
		vm.state.Draft = ""
	}
	vm.state.Detail = &OpenDetail{CompanyID: id, Tab: TabLetter}
	vm.mu.Unlock()
	vm.emit(bus.DetailOpened, id)

	vm.chats.Add(1)
	go func() {
		defer vm.chats.Done()
		_ = vm.LoadChat(ctx, id)
	}()
	return true
}

// Close hides the detail modal.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	vm.state.Detail = nil
	vm.mu.Unlock()
	vm.emit(bus.DetailClosed, nil)
}

// SwitchTab toggles the visible tab of the open modal without refetching.
func (vm *ViewModel) SwitchTab(t Tab) {
	vm.mu.Lock()
	if vm.state.Detail == nil {
		vm.mu.Unlock()
		return
	}
	vm.state.Detail.Tab = t
	vm.mu.Unlock()
	vm.emit(bus.DetailTab, t)
}

// Generate asks the backend for a letter draft and patches it into the store.
func (vm *ViewModel) Generate(ctx context.Context, id int64) error {
	if !vm.begin(ActGenerate) {
		return nil
	}
	defer vm.end(ActGenerate)

	letter, err := vm.backend.GenerateEmail(ctx, id)
	if err != nil {
		vm.flashErr(vm.cat.Text(i18n.GenerateFailed, UserMessage(vm.cat, err, "")))
		return err
	}
	vm.patch(id, func(c *api.Company) {
		c.EmailSubject = letter.Subject
		c.EmailBody = letter.Body
	})
	vm.resync(ctx, ActGenerate, id)
	return nil
}

// SendEmail dispatches the drafted letter of id.
func (vm *ViewModel) SendEmail(ctx context.Context, id int64) error {
	if !vm.begin(ActSendEmail) {
		return nil
	}
	defer vm.end(ActSendEmail)

	msg, err := vm.backend.SendEmail(ctx, id)
	if err != nil {
		vm.flashErr(vm.cat.Text(i18n.SendFailed, UserMessage(vm.cat, err, "")))
		return err
	}
	vm.flash(msg)
	vm.resync(ctx, ActSendEmail, id)
	return nil
}

// SetStatus moves id to s on the backend, then patches the store entry.
func (vm *ViewModel) SetStatus(ctx context.Context, id int64, s status.Status) error {
	if !s.Valid() {
		err := &ValidationError{Msg: "unknown status " + string(s)}
		vm.flashErr(vm.cat.Text(i18n.ActionFailed, err.Msg))
		return err
	}
	if err := vm.backend.UpdateStatus(ctx, id, s); err != nil {
		vm.flashErr(vm.cat.Text(i18n.ActionFailed, UserMessage(vm.cat, err, "")))
		return err
	}
	vm.patch(id, func(c *api.Company) { c.Status = s })
	vm.flash(vm.cat.Text(i18n.StatusUpdated))
	vm.resync(ctx, ActSetStatus, id)
	return nil
}

// LoadChat fetches the thread of id. Failures are logged, never shown.
func (vm *ViewModel) LoadChat(ctx context.Context, id int64) error {
	msgs, err := vm.backend.ListMessages(ctx, id)
	if err != nil {
		vm.logger.Warn("load chat", zap.Int64("company_id", id), zap.Error(err))
		return err
	}
	vm.mu.Lock()
	vm.state.Chat = Chat{CompanyID: id, Messages: msgs, Loaded: true}
	vm.mu.Unlock()
	vm.emit(bus.ChatLoaded, id)
	return nil
}

// SetDraft records the composer text as the user types.
func (vm *ViewModel) SetDraft(text string) {
	vm.mu.Lock()
	vm.state.Draft = text
	vm.mu.Unlock()
}

func (vm *ViewModel) replaceDraft(text string) {
	vm.SetDraft(text)
	vm.emit(bus.ChatDraft, text)
}

// SendChatMessage posts the composer text to id's thread. Blank drafts do
// nothing. The composer is cleared up front and restored if the post fails.
func (vm *ViewModel) SendChatMessage(ctx context.Context, id int64) error {
	vm.mu.Lock()
	text := strings.TrimSpace(vm.state.Draft)
	vm.mu.Unlock()
	if text == "" {
		return nil
	}
	vm.replaceDraft("")
	if err := vm.backend.PostMessage(ctx, id, text, api.Outgoing); err != nil {
		vm.replaceDraft(text)
		vm.flashErr(vm.cat.Text(i18n.SendFailed, UserMessage(vm.cat, err, "")))
		return err
	}
	vm.resync(ctx, ActSendChat, id)
	return nil
}

// SimulateReply has the backend fabricate an inbound reply for id.
func (vm *ViewModel) SimulateReply(ctx context.Context, id int64) error {
	res, err := vm.backend.SimulateReply(ctx, id)
	if err != nil {
		vm.flashErr(vm.cat.Text(i18n.ActionFailed, UserMessage(vm.cat, err, "")))
		return err
	}
	vm.flash(res.Message)
	vm.resync(ctx, ActSimulateReply, id)
	return nil
}

// Search runs AI discovery for category behind the blocking loader.
func (vm *ViewModel) Search(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		vm.flash(vm.cat.Text(i18n.EnterCategory))
		return nil
	}
	if !vm.begin(ActSearch) {
		return nil
	}
	defer vm.end(ActSearch)
	vm.setLoader(vm.cat.Text(i18n.Searching, category))
	defer vm.setLoader("")

	res, err := vm.backend.Search(ctx, category)
	if err != nil {
		vm.flashErr(vm.cat.Text(i18n.SearchFailed, UserMessage(vm.cat, err, "")))
		return err
	}
	vm.flash(res.Message)
	vm.resync(ctx, ActSearch, 0)
	return nil
}

// ErrNotConfirmed is returned when the user declines a bulk action.
var ErrNotConfirmed = errors.New("not confirmed")

// SendToAllNew asks confirm first, then generates and sends letters to every
// company still in "new". confirm may block; it runs on the caller's goroutine.
func (vm *ViewModel) SendToAllNew(ctx context.Context, confirm func(prompt string) bool) error {
	if confirm == nil || !confirm(vm.cat.Text(i18n.ConfirmSendAll)) {
		return ErrNotConfirmed
	}
	if !vm.begin(ActSendAll) {
		return nil
	}
	defer vm.end(ActSendAll)
	vm.setLoader(vm.cat.Text(i18n.SendingAll))
	defer vm.setLoader("")

	msg, err := vm.backend.SendAll(ctx)
	if err != nil {
		vm.flashErr(vm.cat.Text(i18n.SendAllFailed, UserMessage(vm.cat, err, "")))
		return err
	}
	vm.flash(msg)
	vm.resync(ctx, ActSendAll, 0)
	return nil
}

func (vm *ViewModel) patch(id int64, fn func(*api.Company)) {
	vm.mu.Lock()
	i := vm.state.indexOf(id)
	if i >= 0 {
		fn(&vm.state.Companies[i])
	}
	vm.mu.Unlock()
	if i >= 0 {
		vm.emit(bus.CompaniesPatched, id)
	}
}

// resync applies the consistency policy of a after it succeeded on id.
func (vm *ViewModel) resync(ctx context.Context, a Action, id int64) {
	p := Policies[a]
	if p.ReloadCompanies {
		_ = vm.LoadCompanies(ctx)
	}
	if p.ReloadChat {
		_ = vm.LoadChat(ctx, id)
	}
	if p.Reopen {
		vm.Open(ctx, id)
	}
	if p.Tab != TabKeep {
		vm.SwitchTab(p.Tab)
	}
}
