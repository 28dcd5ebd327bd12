package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
	"procure.GO/service/audit"
	"procure.GO/service/notify"
)

var (
	historyActor string
	historyLimit int
	feedLimit    int64
	feedClear    bool
)

var errAuditDisabled = errors.New("audit history is disabled (AUDIT_DRIVER=off or database unavailable)")

var auditHistoryCmd = &cobra.Command{
	Use:   "audit:history [document id]",
	Short: "Show the status history of a requisition or order, or the recent actions of one user",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && historyActor == "" {
			return errs.Invalid("give a document id or --actor")
		}
		return withApp(func(a *app) error {
			rec, ok := a.recorder.(*audit.GormRecorder)
			if !ok {
				return errAuditDisabled
			}
			var (
				list []entity.AuditEntry
				err  error
			)
			if len(args) == 1 {
				list, err = rec.History(cmd.Context(), args[0])
			} else {
				list, err = rec.ByActor(cmd.Context(), historyActor, historyLimit)
			}
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout(), "WHEN", "DOCUMENT", "ACTOR", "FROM", "TO", "COMMENTS")
			for _, e := range list {
				row(tw, e.CreatedAt.Format("2006-01-02 15:04:05"), e.DocumentID, e.ActorID, e.StatusBefore, e.StatusAfter, e.Comments)
			}
			return tw.Flush()
		})
	},
}

var notifyRecentCmd = &cobra.Command{
	Use:   "notify:recent",
	Short: "Show the notification feed of the --as user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := actor()
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			feed, ok := a.notifier.(*notify.RedisNotifier)
			if !ok {
				return errors.New("notification feed needs REDIS_ADDR; notifications are only logged")
			}
			if feedClear {
				if err := feed.Clear(cmd.Context(), userID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared notifications of %s\n", userID)
				return nil
			}
			list, err := feed.Recent(cmd.Context(), userID, feedLimit)
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout(), "WHEN", "TYPE", "TITLE", "MESSAGE")
			for _, n := range list {
				row(tw, n.CreatedAt.Format("2006-01-02 15:04"), n.Type, n.Title, n.Message)
			}
			return tw.Flush()
		})
	},
}

var usersPasswdCmd = &cobra.Command{
	Use:   "users:passwd",
	Short: "Change the password of the --as user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := actor()
		if err != nil {
			return err
		}
		oldPw, _ := cmd.Flags().GetString("old")
		newPw, _ := cmd.Flags().GetString("new")
		return withApp(func(a *app) error {
			if err := a.accounts.ChangePassword(userID, oldPw, newPw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password changed for %s\n", userID)
			return nil
		})
	},
}

func init() {
	auditHistoryCmd.Flags().StringVar(&historyActor, "actor", "", "list actions of this user instead of one document")
	auditHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries with --actor")

	notifyRecentCmd.Flags().Int64Var(&feedLimit, "limit", 20, "maximum entries")
	notifyRecentCmd.Flags().BoolVar(&feedClear, "clear", false, "empty the feed instead of listing it")

	usersPasswdCmd.Flags().String("old", "", "current password")
	usersPasswdCmd.Flags().String("new", "", "new password")
	usersPasswdCmd.MarkFlagRequired("old")
	usersPasswdCmd.MarkFlagRequired("new")

	rootCmd.AddCommand(auditHistoryCmd, notifyRecentCmd, usersPasswdCmd)
}
