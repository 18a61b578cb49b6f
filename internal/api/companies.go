package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/matheus3301/outreach/internal/status"
)

// ListCompanies returns every company of the user in backend order.
func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	return c.listCompanies(ctx, nil)
}

// ListCompaniesByStatus asks the backend to filter by status.
func (c *Client) ListCompaniesByStatus(ctx context.Context, s status.Status) ([]Company, error) {
	return c.listCompanies(ctx, url.Values{"status": {string(s)}})
}

func (c *Client) listCompanies(ctx context.Context, q url.Values) ([]Company, error) {
	var out []Company
	if err := c.do(ctx, call{method: http.MethodGet, path: "/companies", query: q, out: &out}); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Company{}
	}
	return out, nil
}

// Search starts AI-assisted discovery of companies in category.
func (c *Client) Search(ctx context.Context, category string) (*SearchResult, error) {
	var res SearchResult
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/search",
		body:   map[string]string{"category": category},
		out:    &res,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SendAll generates and sends letters to every company still in "new".
func (c *Client) SendAll(ctx context.Context) (string, error) {
	var res messageResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/send-all", out: &res}); err != nil {
		return "", err
	}
	return res.Message, nil
}

// GenerateEmail drafts a letter for a company.
func (c *Client) GenerateEmail(ctx context.Context, id int64) (*Letter, error) {
	var l Letter
	if err := c.do(ctx, call{method: http.MethodPost, path: fmt.Sprintf("/generate-email/%d", id), out: &l}); err != nil {
		return nil, err
	}
	return &l, nil
}

// SendEmail dispatches the drafted letter of a company.
func (c *Client) SendEmail(ctx context.Context, id int64) (string, error) {
	var res messageResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: fmt.Sprintf("/send-email/%d", id), out: &res}); err != nil {
		return "", err
	}
	return res.Message, nil
}

// UpdateStatus moves a company to s.
func (c *Client) UpdateStatus(ctx context.Context, id int64, s status.Status) error {
	return c.do(ctx, call{
		method: http.MethodPut,
		path:   fmt.Sprintf("/company/%d/status", id),
		body:   map[string]string{"status": string(s)},
	})
}
