package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"redline/internal/save"
)

func newUserCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local agent accounts",
	}
	cmd.AddCommand(newUserListCommand(opts), newUserUnlockCommand(opts), newUserDeleteCommand(opts))
	return cmd
}

func newUserListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			names, err := e.users.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No agents registered.")
				return nil
			}
			maxAttempts := e.users.Policy().MaxLoginAttempts
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "AGENT\tREPUTATION\tLOGINS\tCREATED\tSTATUS")
			for _, name := range names {
				u, err := e.users.Get(cmd.Context(), name)
				if err != nil {
					return err
				}
				status := "active"
				if u.Locked(maxAttempts) {
					status = "locked"
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", u.Username, u.Reputation, u.LoginCount, u.CreatedAt.Local().Format(time.DateOnly), status)
			}
			return tw.Flush()
		},
	}
}

func newUserUnlockCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <agent>",
		Short: "Reactivate a locked account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.users.Unlock(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to unlock %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s.\n", args[0])
			return nil
		},
	}
}

func newUserDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <agent>",
		Short: "Delete an account and its saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.users.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete %s: %w", args[0], err)
			}
			if err := e.saves.Delete(cmd.Context(), args[0]); err != nil && !errors.Is(err, save.ErrNoSave) {
				return fmt.Errorf("failed to delete save for %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted agent %s.\n", args[0])
			return nil
		},
	}
}
