package ctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/app"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/store"
	"github.com/matheus3301/outreach/internal/term"
	"github.com/matheus3301/outreach/internal/tui/model"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// Execute runs the outreachctl command tree.
func Execute() error {
	return NewRoot().Execute()
}

type globals struct {
	profile    string
	baseURL    string
	configPath string
	json       bool
	verbose    bool
}

// session is what a command gets to work with.
type session struct {
	client   *api.Client
	tokens   *store.Tokens
	cat      *i18n.Catalog
	settings *app.Settings
	out      io.Writer
	json     bool
}

// NewRoot builds the command tree.
func NewRoot() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:          "outreachctl",
		Short:        "Scriptable client for the outreach backend",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&g.profile, "profile", "", "profile name (overrides config default)")
	flags.StringVar(&g.baseURL, "base-url", "", "backend address (overrides config and env)")
	flags.StringVar(&g.configPath, "config", "", "config file (default ~/.outreach/config.toml)")
	flags.BoolVar(&g.json, "json", false, "output in JSON format")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log to stderr at debug level")

	root.AddCommand(
		loginCmd(g),
		registerCmd(g),
		logoutCmd(g),
		whoamiCmd(g),
		companiesCmd(g),
		countsCmd(g),
		searchCmd(g),
		sendAllCmd(g),
		generateCmd(g),
		sendCmd(g),
		statusCmd(g),
		messagesCmd(g),
		sayCmd(g),
		simulateReplyCmd(g),
	)
	return root
}

// run starts the core fx module for the duration of fn. Backend errors are
// turned into the text a user would see in the terminal client.
func (g *globals) run(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	s := &session{out: cmd.OutOrStdout(), json: g.json}
	fxApp := fx.New(
		app.Core(app.Params{
			Binary:      "outreachctl",
			ProfileFlag: g.profile,
			BaseURLFlag: g.baseURL,
			ConfigPath:  g.configPath,
			Console:     g.verbose,
			Debug:       g.verbose,
		}),
		fx.Populate(&s.client, &s.tokens, &s.cat, &s.settings),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = fxApp.Stop(context.Background()) }()

	if err := fn(ctx, s); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return err
		}
		return errors.New(term.Sanitize(model.UserMessage(s.cat, err, err.Error())))
	}
	return nil
}

// emit writes v as JSON when --json is set, otherwise calls text.
func (s *session) emit(v any, text func(w io.Writer)) error {
	if s.json {
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(s.out)
	return nil
}

// result is the JSON shape of commands that only report a message.
type result struct {
	Message string `json:"message"`
}

func (s *session) message(msg string) error {
	return s.emit(result{Message: msg}, func(w io.Writer) {
		_, _ = fmt.Fprintln(w, term.Sanitize(msg))
	})
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid company id %q", arg)
	}
	return id, nil
}
