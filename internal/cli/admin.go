package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "admin", Short: "Administrator console"}
	cmd.AddCommand(
		newAdminLoginCommand(),
		newAdminLogoutCommand(),
		newAdminStatsCommand(),
		newAdminUsersCommand(),
		newAdminBlockCommand(),
		newAdminOrdersCommand(),
	)
	return cmd
}

func newAdminLoginCommand() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the admin console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "signing in as admin", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.AdminLogin(ctx, username, password); err != nil {
					return nil, err
				}
				return []string{"admin session stored"}, nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}

func newAdminLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "signing out admin", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.AdminLogout(ctx); err != nil {
					return nil, err
				}
				return []string{"admin session cleared"}, nil
			})
		},
	}
}

func newAdminStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show marketplace totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading dashboard", func(ctx context.Context, a *app) ([]string, error) {
				stats, err := a.client.AdminDashboardStats(ctx)
				if err != nil {
					return nil, err
				}
				return []string{
					fmt.Sprintf("users: %d", stats.Users),
					fmt.Sprintf("products: %d", stats.Products),
					fmt.Sprintf("orders: %d", stats.Orders),
					fmt.Sprintf("revenue: %.2f", stats.Revenue),
				}, nil
			})
		},
	}
}

func newAdminUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List marketplace accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading users", func(ctx context.Context, a *app) ([]string, error) {
				users, err := a.client.AdminUsers(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(users))
				for _, u := range users {
					state := ""
					if u.Blocked {
						state = "  [blocked]"
					}
					lines = append(lines, fmt.Sprintf("%s  %-20s %-28s %s%s", u.ID, u.Name, u.Email, u.UserType, state))
				}
				if len(lines) == 0 {
					lines = []string{"no accounts"}
				}
				return lines, nil
			})
		},
	}
}

func newAdminBlockCommand() *cobra.Command {
	var unblock bool
	cmd := &cobra.Command{
		Use:   "block <user-id>",
		Short: "Block or unblock an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "updating account", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.AdminSetUserBlocked(ctx, args[0], !unblock); err != nil {
					return nil, err
				}
				if unblock {
					return []string{"account unblocked"}, nil
				}
				return []string{"account blocked"}, nil
			})
		},
	}
	cmd.Flags().BoolVar(&unblock, "unblock", false, "unblock instead of block")
	return cmd
}

func newAdminOrdersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List all marketplace orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading orders", func(ctx context.Context, a *app) ([]string, error) {
				orders, err := a.client.AdminOrders(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(orders))
				for _, o := range orders {
					lines = append(lines, fmt.Sprintf("%s  %-10s  %8.2f", o.ID, o.Status, o.Total))
				}
				if len(lines) == 0 {
					lines = []string{"no orders"}
				}
				return lines, nil
			})
		},
	}
}
