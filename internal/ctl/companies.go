package ctl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/status"
	"github.com/matheus3301/outreach/internal/term"
	"github.com/matheus3301/outreach/internal/tui/model"
	"github.com/spf13/cobra"
)

func companiesCmd(g *globals) *cobra.Command {
	var statusFlag string
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter status.Status
			if statusFlag != "" {
				s, err := status.Parse(statusFlag)
				if err != nil {
					return err
				}
				filter = s
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				var (
					list []api.Company
					err  error
				)
				if filter != "" {
					list, err = s.client.ListCompaniesByStatus(ctx, filter)
				} else {
					list, err = s.client.ListCompanies(ctx)
				}
				if err != nil {
					return err
				}
				return s.emit(list, func(w io.Writer) {
					printCompanies(w, list, s.cat)
				})
			})
		},
	}
	cmd.Flags().StringVar(&statusFlag, "status", "", "only companies in this status")
	return cmd
}

func printCompanies(w io.Writer, list []api.Company, cat *i18n.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tEMAIL\tSTATUS\tMSGS")
	for _, c := range list {
		email := term.Line(c.Email)
		if email == "" {
			email = model.Placeholder
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s %s\t%d\n",
			c.ID, term.Line(c.Name), term.Line(c.Category), email, c.Status.Icon(), cat.StatusLabel(c.Status), c.MessagesCount)
	}
	_ = tw.Flush()
}

type countsJSON struct {
	All      int            `json:"all"`
	ByStatus map[string]int `json:"by_status"`
}

func countsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show the number of companies per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				list, err := s.client.ListCompanies(ctx)
				if err != nil {
					return err
				}
				counts := model.Counts(list)
				out := countsJSON{All: counts.All, ByStatus: make(map[string]int, len(counts.ByStatus))}
				for st, n := range counts.ByStatus {
					out.ByStatus[string(st)] = n
				}
				return s.emit(out, func(w io.Writer) {
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					_, _ = fmt.Fprintf(tw, "0\t%s\t%d\n", s.cat.AllLabel, counts.All)
					for i, st := range status.All() {
						_, _ = fmt.Fprintf(tw, "%d\t%s %s\t%d\n", i+1, st.Icon(), s.cat.StatusLabel(st), counts.ByStatus[st])
					}
					_ = tw.Flush()
				})
			})
		},
	}
}

func searchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "search <category…>",
		Short: "Discover companies of a category with AI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				category := strings.TrimSpace(strings.Join(args, " "))
				if category == "" {
					return &model.ValidationError{Msg: s.cat.Text(i18n.EnterCategory)}
				}
				res, err := s.client.Search(ctx, category)
				if err != nil {
					return err
				}
				return s.emit(res, func(w io.Writer) {
					_, _ = fmt.Fprintln(w, term.Sanitize(res.Message))
					_, _ = fmt.Fprintf(w, "Total found: %d\n", res.TotalFound)
				})
			})
		},
	}
}

func sendAllCmd(g *globals) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "send-all",
		Short: "Generate and send letters to every new company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				if !yes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), s.cat.Text(i18n.ConfirmSendAll)) {
					return s.message("Cancelled")
				}
				msg, err := s.client.SendAll(ctx)
				if err != nil {
					return err
				}
				return s.message(msg)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks question on w and reads a y/n answer from r.
func confirm(r io.Reader, w io.Writer, question string) bool {
	_, _ = fmt.Fprintf(w, "%s [y/N] ", question)
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}

func generateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <id>",
		Short: "Generate an AI letter for a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				l, err := s.client.GenerateEmail(ctx, id)
				if err != nil {
					return err
				}
				return s.emit(l, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%s: %s\n\n%s\n", s.cat.Text(i18n.LabelSubject), term.Line(l.Subject), term.Sanitize(l.Body))
				})
			})
		},
	}
}

func sendCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "send <id>",
		Short: "Send the generated letter of a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				msg, err := s.client.SendEmail(ctx, id)
				if err != nil {
					return err
				}
				return s.message(msg)
			})
		},
	}
}

func statusCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a company to another pipeline status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := status.Parse(args[1])
			if err != nil {
				return err
			}
			return g.run(cmd, func(ctx context.Context, s *session) error {
				if err := s.client.UpdateStatus(ctx, id, st); err != nil {
					return err
				}
				return s.message(s.cat.Text(i18n.StatusUpdated))
			})
		},
	}
}
