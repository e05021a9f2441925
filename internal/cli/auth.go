package cli

import (
	"context"
	"fmt"

	"github.com/agromarket/agromarket-go/internal/api"
	"github.com/agromarket/agromarket-go/internal/domain"

	"github.com/spf13/cobra"
)

func newLoginCommand() *cobra.Command {
	var in api.LoginInput
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "signing in", func(ctx context.Context, a *app) ([]string, error) {
				user, err := a.client.Login(ctx, in)
				if err != nil {
					return nil, err
				}
				return []string{
					fmt.Sprintf("signed in as %s (%s)", user.Name, user.UserType),
					fmt.Sprintf("remember me: %v", in.RememberMe),
				}, nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	cmd.Flags().BoolVar(&in.RememberMe, "remember", false, "keep the session across restarts")
	return cmd
}

func newRegisterCommand() *cobra.Command {
	var in api.RegisterInput
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a marketplace account",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.UserType = domain.Role(role)
			return run(cmd, "registering", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.Register(ctx, in); err != nil {
					return nil, err
				}
				return []string{"account created; sign in with `agromarket login`"}, nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	cmd.Flags().StringVar(&role, "role", "farmer", "account role: farmer, expert or company")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&in.Location, "location", "", "location")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "signing out", func(ctx context.Context, a *app) ([]string, error) {
				a.client.Logout(ctx)
				return []string{"signed out"}, nil
			})
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading account", func(ctx context.Context, a *app) ([]string, error) {
				if refresh {
					user, err := a.client.Me(ctx)
					if err != nil {
						return nil, err
					}
					return []string{fmt.Sprintf("%s <%s> role=%s", user.Name, user.Email, user.UserType)}, nil
				}
				sess, err := a.client.Sessions().Get(ctx)
				if err != nil {
					return nil, err
				}
				return []string{
					fmt.Sprintf("%s <%s> role=%s", sess.User.Name, sess.User.Email, sess.User.UserType),
					fmt.Sprintf("last activity: %s", sess.LastActivityAt.Local().Format("2006-01-02 15:04:05")),
				}, nil
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-fetch the account from the server")
	return cmd
}
