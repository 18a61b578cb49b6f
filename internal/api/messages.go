package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListMessages returns a company's chat thread in server order.
func (c *Client) ListMessages(ctx context.Context, companyID int64) ([]Message, error) {
	var out []Message
	if err := c.do(ctx, call{method: http.MethodGet, path: fmt.Sprintf("/company/%d/messages", companyID), out: &out}); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Message{}
	}
	return out, nil
}

// PostMessage appends a message to a company's thread.
func (c *Client) PostMessage(ctx context.Context, companyID int64, text string, dir Direction) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   fmt.Sprintf("/company/%d/messages", companyID),
		body:   map[string]string{"text": text, "direction": string(dir)},
	})
}

// SimulateReply asks the backend to fabricate an inbound reply.
func (c *Client) SimulateReply(ctx context.Context, companyID int64) (*ReplyResult, error) {
	var res ReplyResult
	if err := c.do(ctx, call{method: http.MethodPost, path: fmt.Sprintf("/simulate-reply/%d", companyID), out: &res}); err != nil {
		return nil, err
	}
	return &res, nil
}
