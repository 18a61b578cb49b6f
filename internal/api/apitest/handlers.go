package apitest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/status"
)

func (s *Server) register(c echo.Context) error {
	var req api.Registration
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		return detail(c, http.StatusBadRequest, "Email already registered")
	}
	u, token := s.addUserLocked(req.Name, req.Email, req.SendEmail, req.Password)
	return c.JSON(http.StatusOK, api.AuthResult{Token: token, User: u})
}

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[req.Email]
	if !ok || a.password != req.Password {
		return detail(c, http.StatusUnauthorized, "Invalid email or password")
	}
	token := fmt.Sprintf("token-%d-%d", a.user.ID, len(s.tokens)+1)
	s.tokens[token] = a.user.ID
	return c.JSON(http.StatusOK, api.AuthResult{Token: token, User: a.user})
}

func (s *Server) me(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.userLocked(c))
}

func (s *Server) listCompanies(c echo.Context) error {
	filter := status.Status(c.QueryParam("status"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Company, 0, len(s.companies))
	for _, co := range s.companies {
		if filter != "" && co.Status != filter {
			continue
		}
		cp := *co
		cp.MessagesCount = len(s.messages[co.ID])
		out = append(out, cp)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) search(c echo.Context) error {
	var req struct {
		Category string `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	found, ok := s.SearchResults[req.Category]
	if !ok {
		found = []api.Company{
			{Name: req.Category + " One", Email: "one@" + slug(req.Category) + ".test"},
			{Name: req.Category + " Two", Email: "two@" + slug(req.Category) + ".test"},
		}
	}
	for _, co := range found {
		co.Category = req.Category
		s.addCompanyLocked(co)
	}
	return c.JSON(http.StatusOK, api.SearchResult{
		Message:    fmt.Sprintf("Found and added %d new companies.", len(found)),
		TotalFound: len(found),
	})
}

func (s *Server) sendAll(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.userLocked(c)
	sent, skipped := 0, 0
	for _, co := range s.companies {
		if co.Status != status.New {
			continue
		}
		if !strings.Contains(co.Email, "@") {
			skipped++
			continue
		}
		s.deliverLocked(co, user)
		sent++
	}
	if sent == 0 && skipped == 0 {
		return message(c, "No new companies to send to")
	}
	msg := fmt.Sprintf("Sent: %d", sent)
	if skipped > 0 {
		msg += fmt.Sprintf(" | without email: %d", skipped)
	}
	return message(c, msg)
}

func (s *Server) generateEmail(c echo.Context) error {
	id, ok := companyID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	co := s.findLocked(id)
	if co == nil {
		return detail(c, http.StatusNotFound, "Company not found")
	}
	l := s.draftLocked(co)
	co.EmailSubject, co.EmailBody = l.Subject, l.Body
	return c.JSON(http.StatusOK, l)
}

func (s *Server) sendEmail(c echo.Context) error {
	id, ok := companyID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	co := s.findLocked(id)
	if co == nil {
		return detail(c, http.StatusNotFound, "Company not found")
	}
	s.deliverLocked(co, s.userLocked(c))
	return message(c, "Email sent successfully")
}

func (s *Server) updateStatus(c echo.Context) error {
	id, ok := companyID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid body")
	}
	st, err := status.Parse(req.Status)
	if err != nil {
		return detail(c, http.StatusBadRequest, "Invalid status")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	co := s.findLocked(id)
	if co == nil {
		return detail(c, http.StatusNotFound, "Company not found")
	}
	co.Status = st
	return message(c, "Status changed to "+req.Status)
}

func (s *Server) listMessages(c echo.Context) error {
	id, ok := companyID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(id) == nil {
		return detail(c, http.StatusNotFound, "Company not found")
	}
	out := append([]api.Message{}, s.messages[id]...)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) postMessage(c echo.Context) error {
	id, ok := companyID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	var req struct {
		Text      string        `json:"text"`
		Direction api.Direction `json:"direction"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid body")
	}
	if req.Direction == "" {
		req.Direction = api.Outgoing
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	co := s.findLocked(id)
	if co == nil {
		return detail(c, http.StatusNotFound, "Company not found")
	}
	author := s.userLocked(c).Name
	if req.Direction == api.Incoming {
		author = co.Name
		if co.Status == status.EmailSent {
			co.Status = status.Replied
		}
	}
	return c.JSON(http.StatusOK, s.appendMessageLocked(id, req.Direction, author, req.Text))
}

func (s *Server) simulateReply(c echo.Context) error {
	id, ok := companyID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	co := s.findLocked(id)
	if co == nil {
		return detail(c, http.StatusNotFound, "Company not found")
	}
	if co.Status != status.EmailSent {
		return detail(c, http.StatusBadRequest, "Send the email first!")
	}
	reply := "Thanks for reaching out, send us the price list."
	co.Status = status.Replied
	co.ReplyText = reply
	s.appendMessageLocked(id, api.Incoming, co.Name, reply)
	return c.JSON(http.StatusOK, api.ReplyResult{Message: "Reply received!", Reply: reply})
}

func (s *Server) deliverLocked(co *api.Company, from api.User) {
	if co.EmailBody == "" {
		l := s.draftLocked(co)
		co.EmailSubject, co.EmailBody = l.Subject, l.Body
	}
	co.Status = status.EmailSent
	s.appendMessageLocked(co.ID, api.Outgoing, from.Name,
		fmt.Sprintf("Subject: %s\n\n%s", co.EmailSubject, co.EmailBody))
}

func (s *Server) draftLocked(co *api.Company) api.Letter {
	if s.Letter != nil {
		return *s.Letter
	}
	return api.Letter{
		Subject: "Catering offer for " + co.Name,
		Body:    "Hello " + co.Name + ",\nwe would like to offer our services.",
	}
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}
