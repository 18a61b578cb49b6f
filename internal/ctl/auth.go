package ctl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/term"
	"github.com/matheus3301/outreach/internal/tui/model"
	"github.com/spf13/cobra"
)

type credentials struct {
	Password string `env:"OUTREACH_PASSWORD"`
}

// password returns the flag value, falling back to OUTREACH_PASSWORD.
func password(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	var c credentials
	if err := env.Parse(&c); err != nil {
		return "", fmt.Errorf("parse env: %w", err)
	}
	return c.Password, nil
}

func loginCmd(g *globals) *cobra.Command {
	var passwordFlag string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the token in the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := password(passwordFlag)
			if err != nil {
				return err
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				email := strings.TrimSpace(args[0])
				if email == "" || pw == "" {
					return &model.ValidationError{Msg: s.cat.Text(i18n.FillAllFields)}
				}
				res, err := s.client.Login(ctx, email, pw)
				if err != nil {
					return err
				}
				return s.signedIn(res)
			})
		},
	}
	cmd.Flags().StringVar(&passwordFlag, "password", "", "account password (default $OUTREACH_PASSWORD)")
	return cmd
}

func registerCmd(g *globals) *cobra.Command {
	var reg api.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := password(reg.Password)
			if err != nil {
				return err
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				r := api.Registration{
					Name:      strings.TrimSpace(reg.Name),
					Email:     strings.TrimSpace(reg.Email),
					SendEmail: strings.TrimSpace(reg.SendEmail),
					Password:  pw,
				}
				if r.Name == "" || r.Email == "" || r.SendEmail == "" || r.Password == "" {
					return &model.ValidationError{Msg: s.cat.Text(i18n.FillAllFields)}
				}
				if utf8.RuneCountInString(r.Password) < model.MinPasswordLen {
					return &model.ValidationError{Msg: s.cat.Text(i18n.PasswordTooShort)}
				}
				res, err := s.client.Register(ctx, r)
				if err != nil {
					return err
				}
				return s.signedIn(res)
			})
		},
	}
	cmd.Flags().StringVar(&reg.Name, "name", "", "display name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "login email")
	cmd.Flags().StringVar(&reg.SendEmail, "send-email", "", "address letters are sent from")
	cmd.Flags().StringVar(&reg.Password, "password", "", "account password (default $OUTREACH_PASSWORD)")
	return cmd
}

func (s *session) signedIn(res *api.AuthResult) error {
	if err := s.tokens.SetToken(res.Token); err != nil {
		return err
	}
	return s.emit(res.User, func(w io.Writer) {
		_, _ = fmt.Fprintf(w, "Signed in as %s <%s> (profile %s)\n", term.Line(res.User.Name), term.Line(res.User.Email), s.settings.Profile)
	})
}

func logoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(_ context.Context, s *session) error {
				if err := s.tokens.ClearToken(); err != nil {
					return err
				}
				return s.message("Signed out")
			})
		},
	}
}

func whoamiCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				u, err := s.client.Me(ctx)
				if err != nil {
					return err
				}
				return s.emit(u, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "Name:    %s\n", term.Line(u.Name))
					_, _ = fmt.Fprintf(w, "Email:   %s\n", term.Line(u.Email))
					_, _ = fmt.Fprintf(w, "Sender:  %s\n", term.Line(u.SendEmail))
					_, _ = fmt.Fprintf(w, "Backend: %s\n", s.client.BaseURL())
				})
			})
		},
	}
}
