package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/status"
	"github.com/matheus3301/outreach/internal/tui/model"
)

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// ParseFilter maps a filter argument to a status. "all", "0" and the empty
// string clear the filter; digits 1-7 pick a status by position.
func ParseFilter(arg string) (*status.Status, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	switch arg {
	case "", "all", "0":
		return nil, nil
	}
	if len(arg) == 1 && arg[0] >= '1' && arg[0] <= '9' {
		s, ok := status.At(int(arg[0] - '0'))
		if !ok {
			return nil, fmt.Errorf("unknown status %q", arg)
		}
		return &s, nil
	}
	s, err := status.Parse(arg)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// runCommand executes a ':' command. It runs on the event loop.
func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "":
	case "search", "s":
		a.do("search", func(ctx context.Context) error {
			return a.vm.Search(ctx, cmd.Args)
		})
	case "sendall":
		a.sendAll()
	case "reload", "r":
		a.reload()
	case "filter", "f":
		s, err := ParseFilter(cmd.Args)
		if err != nil {
			a.fail(a.cat.Text(i18n.UnknownStatus, cmd.Args))
			return
		}
		a.vm.SetFilter(s)
	case "logout":
		a.vm.Logout()
	case "help", "h":
		a.showHelp()
	case "quit", "q":
		a.Stop()
	default:
		a.fail(a.cat.Text(i18n.UnknownCommand, cmd.Name))
	}
}

func (a *App) fail(msg string) {
	a.vm.Flash.Fail(msg, model.FlashDuration)
	a.renderFlash()
}
