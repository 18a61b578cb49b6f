// Package apitest provides an in-process fake of the outreach backend for
// tests. It implements the full HTTP contract with in-memory state, counts
// requests per route and can be told to fail specific routes.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/status"
)

type account struct {
	user     api.User
	password string
}

type failure struct {
	code   int
	detail string
}

// Server is a running fake backend. Use URL as the client's base URL.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]*account
	tokens    map[string]int64
	companies []*api.Company
	messages  map[int64][]api.Message
	failures  map[string]failure
	hits      map[string]int
	nextID    int64

	// SearchResults maps a category to the companies /search will add.
	// Unknown categories yield two generated companies.
	SearchResults map[string][]api.Company
	// Letter, when set, is what /generate-email returns for every company.
	Letter *api.Letter
}

// New starts a fake backend. It is closed by t.Cleanup when t is provided.
func New(t interface{ Cleanup(func()) }) *Server {
	s := &Server{
		accounts:      make(map[string]*account),
		tokens:        make(map[string]int64),
		messages:      make(map[int64][]api.Message),
		failures:      make(map[string]failure),
		hits:          make(map[string]int),
		SearchResults: make(map[string][]api.Company),
	}
	s.Server = httptest.NewServer(s.routes())
	if t != nil {
		t.Cleanup(s.Close)
	}
	return s
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.record)

	e.POST("/auth/register", s.register)
	e.POST("/auth/login", s.login)

	g := e.Group("", s.authenticate)
	g.GET("/auth/me", s.me)
	g.GET("/companies", s.listCompanies)
	g.POST("/search", s.search)
	g.POST("/send-all", s.sendAll)
	g.POST("/generate-email/:id", s.generateEmail)
	g.POST("/send-email/:id", s.sendEmail)
	g.PUT("/company/:id/status", s.updateStatus)
	g.GET("/company/:id/messages", s.listMessages)
	g.POST("/company/:id/messages", s.postMessage)
	g.POST("/simulate-reply/:id", s.simulateReply)
	return e
}

func routeKey(method, path string) string {
	return method + " " + path
}

// record counts hits and applies injected failures.
func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := routeKey(c.Request().Method, c.Path())
		s.mu.Lock()
		s.hits[key]++
		f, failing := s.failures[key]
		s.mu.Unlock()
		if failing {
			if f.detail == "" {
				return c.String(f.code, "")
			}
			return c.JSON(f.code, map[string]string{"detail": f.detail})
		}
		return next(c)
	}
}

func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, _ := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		uid, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			return detail(c, http.StatusUnauthorized, "Not authenticated")
		}
		c.Set("uid", uid)
		return next(c)
	}
}

// Fail makes every request to the route (echo pattern, e.g.
// "/company/:id/status") answer code with the given detail. An empty
// detail produces an empty body.
func (s *Server) Fail(method, path string, code int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[routeKey(method, path)] = failure{code: code, detail: detail}
}

// Heal removes an injected failure.
func (s *Server) Heal(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, routeKey(method, path))
}

// Hits returns how many requests reached the route.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[routeKey(method, path)]
}

// TotalHits returns the number of requests served so far.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// AddUser creates an account and returns a valid token for it.
func (s *Server) AddUser(name, email, sendEmail, password string) (api.User, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(name, email, sendEmail, password)
}

func (s *Server) addUserLocked(name, email, sendEmail, password string) (api.User, string) {
	s.nextID++
	u := api.User{ID: s.nextID, Name: name, Email: email, SendEmail: sendEmail}
	s.accounts[email] = &account{user: u, password: password}
	token := fmt.Sprintf("token-%d-%d", u.ID, time.Now().UnixNano())
	s.tokens[token] = u.ID
	return u, token
}

// AddCompany appends a company to the backend list. Zero ID and empty
// status are filled in.
func (s *Server) AddCompany(c api.Company) api.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.addCompanyLocked(c)
}

func (s *Server) addCompanyLocked(c api.Company) *api.Company {
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	}
	if c.Status == "" {
		c.Status = status.New
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = api.Timestamp{Time: time.Now().UTC()}
	}
	s.companies = append(s.companies, &c)
	return &c
}

// SetStatus changes a company's status behind the client's back.
func (s *Server) SetStatus(id int64, st status.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findLocked(id); c != nil {
		c.Status = st
	}
}

// Company returns a copy of the backend's view of a company.
func (s *Server) Company(id int64) (api.Company, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findLocked(id)
	if c == nil {
		return api.Company{}, false
	}
	out := *c
	out.MessagesCount = len(s.messages[id])
	return out, true
}

// AddMessage appends a message to a company's thread.
func (s *Server) AddMessage(companyID int64, dir api.Direction, author, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendMessageLocked(companyID, dir, author, text)
}

func (s *Server) appendMessageLocked(companyID int64, dir api.Direction, author, text string) api.Message {
	s.nextID++
	m := api.Message{
		ID:        s.nextID,
		Text:      text,
		Direction: dir,
		Author:    author,
		CreatedAt: api.Timestamp{Time: time.Now().UTC()},
	}
	s.messages[companyID] = append(s.messages[companyID], m)
	return m
}

func (s *Server) findLocked(id int64) *api.Company {
	for _, c := range s.companies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Server) userLocked(c echo.Context) api.User {
	uid, _ := c.Get("uid").(int64)
	for _, a := range s.accounts {
		if a.user.ID == uid {
			return a.user
		}
	}
	return api.User{}
}

func detail(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"detail": msg})
}

func message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, map[string]string{"message": msg})
}

func companyID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}
