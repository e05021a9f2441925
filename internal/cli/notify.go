package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newNotifyCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "notify", Short: "Read and manage notifications"}
	cmd.AddCommand(
		newNotifyListCommand(),
		newNotifyWatchCommand(),
		newNotifyReadCommand(),
		newNotifyClearCommand(),
	)
	return cmd
}

func newNotifyListCommand() *cobra.Command {
	var expert bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading notifications", func(ctx context.Context, a *app) ([]string, error) {
				list := a.client.Notifications
				if expert {
					list = a.client.ExpertNotifications
				}
				notifications, err := list(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(notifications))
				for _, n := range notifications {
					marker := " "
					if !n.Read {
						marker = "*"
					}
					lines = append(lines, fmt.Sprintf("%s %s  %s", marker, n.ID, n.Message))
				}
				if len(lines) == 0 {
					lines = []string{"no notifications"}
				}
				return lines, nil
			})
		},
	}
	cmd.Flags().BoolVar(&expert, "expert", false, "read the expert feed")
	return cmd
}

func newNotifyWatchCommand() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the unread count until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "watching notifications", func(ctx context.Context, a *app) ([]string, error) {
				a.client.WatchUnreadCount(ctx, interval, func(count int) {
					fmt.Printf("unread: %d\n", count)
				})
				return []string{"stopped watching"}, nil
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "poll interval")
	return cmd
}

func newNotifyReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "marking as read", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.MarkNotificationRead(ctx, args[0]); err != nil {
					return nil, err
				}
				return []string{"marked as read"}, nil
			})
		},
	}
}

func newNotifyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "clearing notifications", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.ClearAllNotifications(ctx); err != nil {
					return nil, err
				}
				return []string{"notifications cleared"}, nil
			})
		},
	}
}
