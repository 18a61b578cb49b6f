package ctl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/term"
	"github.com/matheus3301/outreach/internal/tui/model"
	"github.com/spf13/cobra"
)

func messagesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "messages <id>",
		Short: "Show a company's chat thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				msgs, err := s.client.ListMessages(ctx, id)
				if err != nil {
					return err
				}
				return s.emit(msgs, func(w io.Writer) {
					for _, l := range model.ChatLines(msgs, s.cat) {
						arrow := "<-"
						if l.Outgoing {
							arrow = "->"
						}
						_, _ = fmt.Fprintf(w, "%s %s [%s]\n", arrow, term.Line(l.Author), l.Time)
						for _, line := range strings.Split(term.Sanitize(l.Text), "\n") {
							_, _ = fmt.Fprintf(w, "   %s\n", line)
						}
					}
				})
			})
		},
	}
}

func sayCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "say <id> <text…>",
		Short: "Post an outgoing message to a company's chat",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return fmt.Errorf("empty message")
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				if err := s.client.PostMessage(ctx, id, text, api.Outgoing); err != nil {
					return err
				}
				return s.message("Message sent")
			})
		},
	}
}

func simulateReplyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate-reply <id>",
		Short: "Have the backend fabricate an inbound reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				res, err := s.client.SimulateReply(ctx, id)
				if err != nil {
					return err
				}
				return s.emit(res, func(w io.Writer) {
					_, _ = fmt.Fprintln(w, term.Sanitize(res.Message))
					if res.Reply != "" {
						_, _ = fmt.Fprintf(w, "\n%s\n", term.Sanitize(res.Reply))
					}
				})
			})
		},
	}
}
