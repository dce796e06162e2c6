package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/models"
	"whitepaper-portal-api/services"
	"whitepaper-portal-api/utils"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		limit  int
		userID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the newest proposals",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			var (
				items []models.Submission
				err   error
			)
			if userID != "" {
				items, err = store.ListByUser(cmd.Context(), userID)
			} else {
				items, err = store.ListRecent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", services.DefaultShowcaseLimit, "maximum number of proposals")
	cmd.Flags().StringVar(&userID, "user", "", "only proposals created by this user id")
	return cmd
}

func showCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one proposal with its section checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			submission, err := newStore().FindByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			doc := proposalMarkdown(submission)
			if raw {
				_, err = io.WriteString(cmd.OutOrStdout(), doc)
				return err
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("create renderer: %w", err)
			}
			out, err := renderer.Render(doc)
			if err != nil {
				return fmt.Errorf("render proposal: %w", err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func advanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <id> <status>",
		Short: "Move a proposal forward in review",
		Long: `advance sets the status of a proposal. Statuses only move forward
(submitted, under_review, approved, funded); going back is refused.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := services.ParseStatus(args[1])
			if err != nil {
				return err
			}

			var events services.EventPublisher
			nc, err := config.ConnectNATS()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "events disabled: %v\n", err)
			}
			if nc != nil {
				defer nc.Drain()
				events = nc
			}

			notifier, mailer := statusNotifiers(events)
			svc := services.NewStatusService(newStore(), notifier)
			submission, err := svc.Advance(cmd.Context(), args[0], to)
			if mailer != nil {
				mailer.Wait()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", submission.ID, submission.Status.Label())
			return nil
		},
	}
}

// statusNotifiers mirrors the API server: mail when SMTP is configured and
// proposals.* events when a publisher is available.
func statusNotifiers(events services.EventPublisher) (services.MultiNotifier, *services.MailNotifier) {
	var notifiers services.MultiNotifier
	var mailer *services.MailNotifier
	if config.MailConfigured() {
		mailer = services.NewMailNotifier(config.SendMail, config.Cfg.SiteBaseURL)
		notifiers = append(notifiers, mailer)
	}
	if events != nil {
		notifiers = append(notifiers, services.NewEventNotifier(events, config.Cfg.NATSSubject))
	}
	return notifiers, mailer
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the whitepaper_submissions table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Migrate(config.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "whitepaper_submissions is up to date")
			return nil
		},
	}
}

func writeTable(w io.Writer, items []models.Submission) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCREATED\tAUTHOR\tTITLE")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.ID,
			item.Status,
			utils.FormatShortDate(item.CreatedAt),
			item.UserName,
			utils.TruncateContent(item.Title, 60),
		)
	}
	return tw.Flush()
}

func proposalMarkdown(submission *models.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", submission.Title)
	fmt.Fprintf(&b, "- **Status:** %s\n", submission.Status.Label())
	fmt.Fprintf(&b, "- **Author:** %s <%s>\n", submission.UserName, submission.UserEmail)
	fmt.Fprintf(&b, "- **Submitted:** %s\n\n", utils.FormatDisplayDate(submission.CreatedAt))

	b.WriteString("## Sections\n\n")
	for _, check := range utils.CheckSections(submission.WhitepaperContent, utils.RequiredSections) {
		mark := "[ ]"
		if check.Found {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "- %s %s\n", mark, check.Label)
	}

	b.WriteString("\n---\n\n")
	b.WriteString(submission.WhitepaperContent)
	b.WriteString("\n")
	return b.String()
}
