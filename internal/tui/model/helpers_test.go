package model

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/api/apitest"
	"github.com/matheus3301/outreach/internal/bus"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) ClearToken() error {
	return m.SetToken("")
}

type fixture struct {
	vm     *ViewModel
	srv    *apitest.Server
	tokens *memTokens
	bus    *bus.Bus
	cat    *i18n.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New(t)
	return newFixtureAt(t, srv, srv.URL)
}

func newFixtureAt(t *testing.T, srv *apitest.Server, baseURL string) *fixture {
	t.Helper()
	tokens := &memTokens{}
	client, err := api.New(baseURL, tokens, nil)
	require.NoError(t, err)
	b := bus.New()
	cat := i18n.For("ru")
	vm := NewViewModel(client, tokens, b, cat, nil)
	t.Cleanup(vm.Wait)
	return &fixture{vm: vm, srv: srv, tokens: tokens, bus: b, cat: cat}
}

// signedIn seeds a user and resumes the session with its token.
func (f *fixture) signedIn(t *testing.T, companies ...api.Company) []api.Company {
	t.Helper()
	_, token := f.srv.AddUser("Anna", "anna@example.com", "out@example.com", "secret1")
	out := make([]api.Company, len(companies))
	for i, c := range companies {
		out[i] = f.srv.AddCompany(c)
	}
	require.NoError(t, f.tokens.SetToken(token))
	require.True(t, f.vm.Resume(testContext(t)))
	return out
}

// unreachable returns the address of a server that is already closed.
func unreachable() string {
	ts := httptest.NewServer(nil)
	ts.Close()
	return ts.URL
}

// testContext returns a context that is canceled when the test finishes,
// matching testing.T.Context (Go 1.24+) for older toolchains.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
