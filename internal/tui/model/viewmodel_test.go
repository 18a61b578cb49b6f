package model

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/bus"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeWithoutToken(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.vm.Resume(testContext(t)))
	assert.Zero(t, f.srv.TotalHits())
	assert.False(t, f.vm.Snapshot().SignedIn())
}

func TestResumeWithStoredToken(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t, api.Company{Name: "Acme"})

	s := f.vm.Snapshot()
	require.True(t, s.SignedIn())
	assert.Equal(t, "Anna", s.User.Name)
	assert.True(t, s.Loaded)
	assert.Len(t, s.Companies, 1)
}

func TestResumeWithRejectedToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.SetToken("expired"))
	assert.False(t, f.vm.Resume(testContext(t)))
	assert.False(t, f.vm.Snapshot().SignedIn())
	assert.Equal(t, 1, f.srv.Hits(http.MethodGet, "/auth/me"))
}

func TestResumeUnreachable(t *testing.T) {
	f := newFixtureAt(t, nil, unreachable())
	require.NoError(t, f.tokens.SetToken("tok"))
	assert.False(t, f.vm.Resume(testContext(t)))
}

func TestLoginValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct{ email, password string }{
		{"", "pw"},
		{"   ", "pw"},
		{"a@b.c", ""},
	}
	for _, tt := range tests {
		err := f.vm.Login(testContext(t), tt.email, tt.password)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, f.cat.Text(i18n.FillAllFields), f.vm.Snapshot().AuthError)
	}
	assert.Zero(t, f.srv.TotalHits())
}

func TestLoginOutcomes(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("Anna", "anna@example.com", "", "secret1")

	require.Error(t, f.vm.Login(testContext(t), "anna@example.com", "nope"))
	assert.Equal(t, "Invalid email or password", f.vm.Snapshot().AuthError)

	f.srv.Fail(http.MethodPost, "/auth/login", http.StatusUnauthorized, "")
	require.Error(t, f.vm.Login(testContext(t), "anna@example.com", "nope"))
	assert.Equal(t, f.cat.Text(i18n.LoginFailed), f.vm.Snapshot().AuthError)
	f.srv.Heal(http.MethodPost, "/auth/login")

	require.NoError(t, f.vm.Login(testContext(t), " anna@example.com ", "secret1"))
	s := f.vm.Snapshot()
	assert.True(t, s.SignedIn())
	assert.Empty(t, s.AuthError)
	assert.True(t, s.Loaded)
	token, _ := f.tokens.Token()
	assert.NotEmpty(t, token)
	assert.False(t, s.Busy[ActLogin])
}

func TestLoginConnectionError(t *testing.T) {
	f := newFixtureAt(t, nil, unreachable())
	err := f.vm.Login(testContext(t), "anna@example.com", "secret1")
	var terr *api.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, f.cat.Text(i18n.ConnectionError), f.vm.Snapshot().AuthError)
	token, _ := f.tokens.Token()
	assert.Empty(t, token)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		reg  api.Registration
		want i18n.Key
	}{
		{api.Registration{Email: "a@b.c", SendEmail: "s@b.c", Password: "secret1"}, i18n.FillAllFields},
		{api.Registration{Name: "A", SendEmail: "s@b.c", Password: "secret1"}, i18n.FillAllFields},
		{api.Registration{Name: "A", Email: "a@b.c", Password: "secret1"}, i18n.FillAllFields},
		{api.Registration{Name: "A", Email: "a@b.c", SendEmail: "s@b.c"}, i18n.FillAllFields},
		{api.Registration{Name: "A", Email: "a@b.c", SendEmail: "s@b.c", Password: "12345"}, i18n.PasswordTooShort},
	}
	for _, tt := range tests {
		err := f.vm.Register(testContext(t), tt.reg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, f.cat.Text(tt.want), verr.Msg)
	}
	assert.Zero(t, f.srv.TotalHits())
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	reg := api.Registration{Name: "Anna", Email: "anna@example.com", SendEmail: "out@example.com", Password: "секрет"}
	require.NoError(t, f.vm.Register(testContext(t), reg))
	assert.Equal(t, "out@example.com", f.vm.Snapshot().User.SendEmail)

	f.vm.Logout()
	require.Error(t, f.vm.Register(testContext(t), reg))
	assert.Equal(t, "Email already registered", f.vm.Snapshot().AuthError)
}

func TestLogoutClearsEverything(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	st := status.New
	f.vm.SetFilter(&st)
	require.True(t, f.vm.Open(testContext(t), cs[0].ID))
	f.vm.Wait()
	before := f.srv.TotalHits()

	f.vm.Logout()
	s := f.vm.Snapshot()
	assert.False(t, s.SignedIn())
	assert.Empty(t, s.Companies)
	assert.Nil(t, s.Filter)
	assert.Nil(t, s.Detail)
	token, _ := f.tokens.Token()
	assert.Empty(t, token)
	assert.Equal(t, before, f.srv.TotalHits())
}

func TestLoadCompaniesFailureKeepsList(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t, api.Company{Name: "Acme"}, api.Company{Name: "Globex"})

	f.srv.Fail(http.MethodGet, "/companies", http.StatusInternalServerError, "")
	require.Error(t, f.vm.LoadCompanies(testContext(t)))
	assert.Len(t, f.vm.Snapshot().Companies, 2)
	assert.Equal(t, f.cat.Text(i18n.LoadFailed), f.vm.Flash.Get())
}

func TestFirstLoadFailureLeavesEmptyStore(t *testing.T) {
	f := newFixture(t)
	_, token := f.srv.AddUser("Anna", "anna@example.com", "", "secret1")
	require.NoError(t, f.tokens.SetToken(token))
	f.srv.Fail(http.MethodGet, "/companies", http.StatusBadGateway, "")

	require.True(t, f.vm.Resume(testContext(t)))
	s := f.vm.Snapshot()
	assert.False(t, s.Loaded)
	assert.Empty(t, VisibleCards(s))
}

func TestSetFilterIsLocal(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t,
		api.Company{Name: "A"},
		api.Company{Name: "B", Status: status.Replied},
		api.Company{Name: "C"},
	)
	hits := f.srv.TotalHits()
	st := status.New
	f.vm.SetFilter(&st)
	cards := VisibleCards(f.vm.Snapshot())
	require.Len(t, cards, 2)
	assert.Equal(t, "A", cards[0].Company.Name)
	assert.Equal(t, 2, cards[1].Number)

	f.vm.SetFilter(nil)
	assert.Len(t, VisibleCards(f.vm.Snapshot()), 3)
	assert.Equal(t, hits, f.srv.TotalHits())
}

func TestEmptyAccount(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t)
	s := f.vm.Snapshot()
	assert.Equal(t, 0, Counts(s.Companies).All)
	assert.Empty(t, VisibleCards(s))
}

func TestOpenNewCompanyWithoutLetter(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme", Email: "hi@acme.test"})

	require.True(t, f.vm.Open(testContext(t), cs[0].ID))
	f.vm.Wait()
	v, ok := ViewDetail(f.vm.Snapshot())
	require.True(t, ok)
	assert.Equal(t, TabLetter, v.Tab)
	assert.True(t, v.ShowGenerate)
	assert.False(t, v.ShowSend)
	assert.False(t, v.HasLetter)
	assert.Equal(t, "hi@acme.test", v.Email)
	assert.Equal(t, Placeholder, v.Phone)
	assert.Equal(t, 1, f.srv.Hits(http.MethodGet, "/company/:id/messages"))
	assert.NotNil(t, v.Chat)
	assert.Empty(t, v.Chat)
}

func TestOpenUnknownCompany(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t)
	assert.False(t, f.vm.Open(testContext(t), 4242))
	f.vm.Wait()
	assert.Nil(t, f.vm.Snapshot().Detail)
	assert.Zero(t, f.srv.Hits(http.MethodGet, "/company/:id/messages"))
}

func TestSwitchTabDoesNotRefetch(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	f.vm.Open(testContext(t), cs[0].ID)
	f.vm.Wait()
	hits := f.srv.TotalHits()

	f.vm.SwitchTab(TabChat)
	assert.Equal(t, TabChat, f.vm.Snapshot().Detail.Tab)
	f.vm.SwitchTab(TabLetter)
	assert.Equal(t, hits, f.srv.TotalHits())

	f.vm.Close()
	f.vm.SwitchTab(TabChat)
	assert.Nil(t, f.vm.Snapshot().Detail)
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	f.srv.Letter = &api.Letter{Subject: "Hi", Body: "Hello"}
	f.vm.Open(testContext(t), cs[0].ID)
	f.vm.SwitchTab(TabChat)

	require.NoError(t, f.vm.Generate(testContext(t), cs[0].ID))
	f.vm.Wait()
	v, ok := ViewDetail(f.vm.Snapshot())
	require.True(t, ok)
	assert.Equal(t, "Hi", v.Company.EmailSubject)
	assert.Equal(t, "Hello", v.Company.EmailBody)
	assert.False(t, v.ShowGenerate)
	assert.True(t, v.ShowSend)
	assert.Equal(t, status.New, v.Company.Status)
	assert.Equal(t, TabLetter, v.Tab)
	assert.False(t, v.Generating)
	assert.Equal(t, 1, f.srv.Hits(http.MethodGet, "/companies"), "generate patches locally")
}

func TestGenerateFailureLeavesState(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	f.srv.Fail(http.MethodPost, "/generate-email/:id", http.StatusInternalServerError, "")

	require.Error(t, f.vm.Generate(testContext(t), cs[0].ID))
	c, _ := f.vm.Snapshot().Company(cs[0].ID)
	assert.False(t, c.HasLetter())
	assert.Equal(t, f.cat.Text(i18n.GenerateFailed, "HTTP 500"), f.vm.Flash.Get())
}

func TestSendEmail(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t,
		api.Company{Name: "Acme", Email: "hi@acme.test"},
		api.Company{Name: "Globex"},
	)
	before := Counts(f.vm.Snapshot().Companies)
	f.vm.Open(testContext(t), cs[0].ID)
	require.NoError(t, f.vm.Generate(testContext(t), cs[0].ID))

	require.NoError(t, f.vm.SendEmail(testContext(t), cs[0].ID))
	f.vm.Wait()
	s := f.vm.Snapshot()
	after := Counts(s.Companies)
	assert.Equal(t, before.ByStatus[status.New]-1, after.ByStatus[status.New])
	assert.Equal(t, before.ByStatus[status.EmailSent]+1, after.ByStatus[status.EmailSent])

	v, ok := ViewDetail(s)
	require.True(t, ok)
	assert.False(t, v.ShowSend)
	assert.Equal(t, TabChat, v.Tab)
	assert.Len(t, v.Chat, 1)
	assert.Equal(t, 1, v.Company.MessagesCount)
	assert.Equal(t, "Email sent successfully", f.vm.Flash.Get())
}

func TestSendEmailFailureMakesNoLocalChange(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	before := f.vm.Snapshot().Companies
	f.srv.Fail(http.MethodPost, "/send-email/:id", http.StatusBadRequest, "No email address")

	require.Error(t, f.vm.SendEmail(testContext(t), cs[0].ID))
	assert.Equal(t, before, f.vm.Snapshot().Companies)
	assert.Equal(t, f.cat.Text(i18n.SendFailed, "No email address"), f.vm.Flash.Get())
	assert.Equal(t, 1, f.srv.Hits(http.MethodGet, "/companies"))
}

func TestSetStatusRoundTrip(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"}, api.Company{Name: "Globex"})

	require.NoError(t, f.vm.SetStatus(testContext(t), cs[0].ID, status.Interested))
	assert.Equal(t, 1, f.srv.Hits(http.MethodGet, "/companies"), "status is patched, not reloaded")

	f.vm.Open(testContext(t), cs[0].ID)
	f.vm.Wait()
	s := f.vm.Snapshot()
	v, _ := ViewDetail(s)
	assert.Equal(t, status.Interested, v.Company.Status)
	counts := Counts(s.Companies)
	assert.Equal(t, 1, counts.ByStatus[status.Interested])
	assert.Equal(t, 1, counts.ByStatus[status.New])
	assert.Equal(t, f.cat.Text(i18n.StatusUpdated), f.vm.Flash.Get())
}

func TestSetStatusFailure(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	f.srv.Fail(http.MethodPut, "/company/:id/status", http.StatusBadRequest, "Invalid status")

	require.Error(t, f.vm.SetStatus(testContext(t), cs[0].ID, status.Closed))
	c, _ := f.vm.Snapshot().Company(cs[0].ID)
	assert.Equal(t, status.New, c.Status)
	assert.Equal(t, f.cat.Text(i18n.ActionFailed, "Invalid status"), f.vm.Flash.Get())
}

func TestSetStatusRejectsUnknownLocally(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	var verr *ValidationError
	require.ErrorAs(t, f.vm.SetStatus(testContext(t), cs[0].ID, "archived"), &verr)
	assert.Zero(t, f.srv.Hits(http.MethodPut, "/company/:id/status"))
}

func TestLoadChatIdempotent(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	f.srv.AddMessage(cs[0].ID, api.Outgoing, "Anna", "first")
	f.srv.AddMessage(cs[0].ID, api.Incoming, "Acme", "second")

	require.NoError(t, f.vm.LoadChat(testContext(t), cs[0].ID))
	first := ChatLines(f.vm.Snapshot().Chat.Messages, f.cat)
	require.NoError(t, f.vm.LoadChat(testContext(t), cs[0].ID))
	second := ChatLines(f.vm.Snapshot().Chat.Messages, f.cat)
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.True(t, first[0].Outgoing)
	assert.Equal(t, "second", first[1].Text)
}

func TestLoadChatFailureIsSilent(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	f.srv.Fail(http.MethodGet, "/company/:id/messages", http.StatusInternalServerError, "boom")

	require.Error(t, f.vm.LoadChat(testContext(t), cs[0].ID))
	assert.Empty(t, f.vm.Flash.Get())
}

func TestSendChatBlankDraft(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	hits := f.srv.TotalHits()

	for _, draft := range []string{"", "   ", "\n\t"} {
		f.vm.SetDraft(draft)
		require.NoError(t, f.vm.SendChatMessage(testContext(t), cs[0].ID))
		assert.Equal(t, draft, f.vm.Snapshot().Draft)
	}
	assert.Equal(t, hits, f.srv.TotalHits())
}

func TestSendChatMessage(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	f.vm.Open(testContext(t), cs[0].ID)
	f.vm.Wait()

	f.vm.SetDraft("  hello there  ")
	require.NoError(t, f.vm.SendChatMessage(testContext(t), cs[0].ID))
	s := f.vm.Snapshot()
	assert.Empty(t, s.Draft)
	require.Len(t, s.Chat.Messages, 1)
	assert.Equal(t, "hello there", s.Chat.Messages[0].Text)
	c, _ := s.Company(cs[0].ID)
	assert.Equal(t, 1, c.MessagesCount)
}

func TestSendChatFailureRestoresDraft(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	f.srv.Fail(http.MethodPost, "/company/:id/messages", http.StatusInternalServerError, "down")

	drafts, unsub := f.bus.Subscribe(bus.ChatDraft, 4)
	defer unsub()

	f.vm.SetDraft("hello")
	require.Error(t, f.vm.SendChatMessage(testContext(t), cs[0].ID))
	assert.Equal(t, "hello", f.vm.Snapshot().Draft)
	assert.Equal(t, f.cat.Text(i18n.SendFailed, "down"), f.vm.Flash.Get())

	require.Len(t, drafts, 2)
	assert.Equal(t, "", (<-drafts).Payload)
	assert.Equal(t, "hello", (<-drafts).Payload)
}

func TestSimulateReply(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme", Email: "hi@acme.test"})
	f.vm.Open(testContext(t), cs[0].ID)
	require.NoError(t, f.vm.SendEmail(testContext(t), cs[0].ID))
	f.vm.SwitchTab(TabLetter)

	require.NoError(t, f.vm.SimulateReply(testContext(t), cs[0].ID))
	f.vm.Wait()
	v, ok := ViewDetail(f.vm.Snapshot())
	require.True(t, ok)
	assert.Equal(t, status.Replied, v.Company.Status)
	assert.Equal(t, TabChat, v.Tab)
	assert.Len(t, v.Chat, 2)
	assert.Equal(t, "Reply received!", f.vm.Flash.Get())
}

func TestSimulateReplyFailure(t *testing.T) {
	f := newFixture(t)
	cs := f.signedIn(t, api.Company{Name: "Acme"})
	require.Error(t, f.vm.SimulateReply(testContext(t), cs[0].ID))
	assert.Equal(t, f.cat.Text(i18n.ActionFailed, "Send the email first!"), f.vm.Flash.Get())
	assert.Nil(t, f.vm.Snapshot().Detail)
}

func TestSearchBlank(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t)
	hits := f.srv.TotalHits()
	for _, q := range []string{"", "   "} {
		require.NoError(t, f.vm.Search(testContext(t), q))
		assert.Equal(t, f.cat.Text(i18n.EnterCategory), f.vm.Flash.Get())
	}
	assert.Equal(t, hits, f.srv.TotalHits())
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t)
	loaders, unsub := f.bus.Subscribe(bus.BusyLoader, 4)
	defer unsub()

	require.NoError(t, f.vm.Search(testContext(t), " cafes "))
	s := f.vm.Snapshot()
	assert.Len(t, s.Companies, 2)
	assert.Empty(t, s.Loader)
	assert.Equal(t, "Found and added 2 new companies.", f.vm.Flash.Get())

	require.Len(t, loaders, 2)
	assert.Equal(t, f.cat.Text(i18n.Searching, "cafes"), (<-loaders).Payload)
	assert.Equal(t, "", (<-loaders).Payload)
}

func TestSearchFailureLeavesStore(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t, api.Company{Name: "Acme"})
	f.srv.Fail(http.MethodPost, "/search", http.StatusServiceUnavailable, "AI is busy")

	require.Error(t, f.vm.Search(testContext(t), "cafes"))
	s := f.vm.Snapshot()
	assert.Len(t, s.Companies, 1)
	assert.Empty(t, s.Loader)
	assert.Equal(t, f.cat.Text(i18n.SearchFailed, "AI is busy"), f.vm.Flash.Get())
}

func TestSendToAllNew(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t,
		api.Company{Name: "Acme", Email: "hi@acme.test"},
		api.Company{Name: "Globex", Email: "hi@globex.test"},
	)

	var asked string
	err := f.vm.SendToAllNew(testContext(t), func(prompt string) bool {
		asked = prompt
		return false
	})
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, f.cat.Text(i18n.ConfirmSendAll), asked)
	assert.Zero(t, f.srv.Hits(http.MethodPost, "/send-all"))

	require.NoError(t, f.vm.SendToAllNew(testContext(t), func(string) bool { return true }))
	counts := Counts(f.vm.Snapshot().Companies)
	assert.Equal(t, 2, counts.ByStatus[status.EmailSent])
	assert.Equal(t, "Sent: 2", f.vm.Flash.Get())
}

// gate blocks GenerateEmail until released.
type gate struct {
	Backend
	entered chan struct{}
	release chan struct{}
	calls   int
}

func (g *gate) GenerateEmail(ctx context.Context, id int64) (*api.Letter, error) {
	g.calls++
	close(g.entered)
	<-g.release
	return &api.Letter{Subject: "s", Body: "b"}, nil
}

func TestDuplicateTriggerIsIgnored(t *testing.T) {
	g := &gate{entered: make(chan struct{}), release: make(chan struct{})}
	vm := NewViewModel(g, &memTokens{}, nil, i18n.For("en"), nil)

	done := make(chan error, 1)
	go func() { done <- vm.Generate(context.Background(), 1) }()
	<-g.entered
	assert.True(t, vm.Snapshot().Busy[ActGenerate])

	assert.NoError(t, vm.Generate(context.Background(), 1))
	close(g.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("generate did not finish")
	}
	assert.Equal(t, 1, g.calls)
	assert.False(t, vm.Snapshot().Busy[ActGenerate])
}

func TestSnapshotIsACopy(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t, api.Company{Name: "Acme"})
	s := f.vm.Snapshot()
	s.Companies[0].Name = "mutated"
	s.User.Name = "mutated"
	again := f.vm.Snapshot()
	assert.Equal(t, "Acme", again.Companies[0].Name)
	assert.Equal(t, "Anna", again.User.Name)
}

// stall blocks the first UpdateStatus and PostMessage until released and
// records every call.
type stall struct {
	Backend
	mu      sync.Mutex
	puts    []status.Status
	posts   []string
	entered chan struct{}
	release chan struct{}
	first   bool
}

func newStall() *stall {
	return &stall{entered: make(chan struct{}), release: make(chan struct{}), first: true}
}

func (s *stall) hold() {
	s.mu.Lock()
	first := s.first
	s.first = false
	s.mu.Unlock()
	if first {
		close(s.entered)
		<-s.release
	}
}

func (s *stall) UpdateStatus(ctx context.Context, id int64, st status.Status) error {
	s.mu.Lock()
	s.puts = append(s.puts, st)
	s.mu.Unlock()
	s.hold()
	return nil
}

func (s *stall) PostMessage(ctx context.Context, companyID int64, text string, dir api.Direction) error {
	s.mu.Lock()
	s.posts = append(s.posts, text)
	s.mu.Unlock()
	s.hold()
	return nil
}

func (s *stall) ListCompanies(ctx context.Context) ([]api.Company, error) {
	return nil, nil
}

func (s *stall) ListMessages(ctx context.Context, companyID int64) ([]api.Message, error) {
	return nil, nil
}

func waitErr(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("call did not finish")
	}
}

func TestOverlappingStatusUpdatesBothRun(t *testing.T) {
	b := newStall()
	vm := NewViewModel(b, &memTokens{}, nil, i18n.For("en"), nil)

	done := make(chan error, 1)
	go func() { done <- vm.SetStatus(context.Background(), 1, status.Replied) }()
	<-b.entered

	require.NoError(t, vm.SetStatus(context.Background(), 1, status.Closed))
	close(b.release)
	waitErr(t, done)

	assert.ElementsMatch(t, []status.Status{status.Replied, status.Closed}, b.puts)
}

func TestOverlappingChatSendsBothRun(t *testing.T) {
	b := newStall()
	vm := NewViewModel(b, &memTokens{}, nil, i18n.For("en"), nil)

	vm.SetDraft("first")
	done := make(chan error, 1)
	go func() { done <- vm.SendChatMessage(context.Background(), 1) }()
	<-b.entered

	vm.SetDraft("second")
	require.NoError(t, vm.SendChatMessage(context.Background(), 1))
	close(b.release)
	waitErr(t, done)

	assert.Equal(t, []string{"first", "second"}, b.posts)
	assert.Empty(t, vm.Snapshot().Draft)
}

func TestUnknownStatusKeepsCountsConsistent(t *testing.T) {
	f := newFixture(t)
	f.signedIn(t, api.Company{Name: "Acme"})
	f.srv.AddCompany(api.Company{Name: "Globex", Status: "archived"})

	var terr *api.TransportError
	require.ErrorAs(t, f.vm.LoadCompanies(testContext(t)), &terr)

	counts := Counts(f.vm.Snapshot().Companies)
	sum := 0
	for _, n := range counts.ByStatus {
		sum += n
	}
	assert.Len(t, counts.ByStatus, 7)
	assert.Equal(t, counts.All, sum)
	assert.Equal(t, 1, counts.All)
}
