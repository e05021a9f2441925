package api

import (
	"context"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

// AdminLogin authenticates against the admin domain. The credential lands
// in its own storage namespace; it never touches the user session and is
// never refreshed.
func (c *Client) AdminLogin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return transport.NewInputError("username and password are required")
	}
	env, err := c.call(ctx, "admin", &transport.Request{
		Method: "POST",
		Path:   "/admin/login",
		Body:   map[string]string{"username": username, "password": password},
		Auth:   transport.AuthNone,
	})
	if err != nil {
		return err
	}
	if env.Token == "" {
		return transport.NewServerError(200, env)
	}
	return c.sessions.SetAdmin(ctx, env.Token, username)
}

func (c *Client) AdminLogout(ctx context.Context) error {
	return c.sessions.ClearAdmin(ctx)
}

func (c *Client) AdminDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	env, err := c.call(ctx, "admin", &transport.Request{
		Method: "GET",
		Path:   "/admin/dashboard",
		Auth:   transport.AuthAdmin,
	})
	if err != nil {
		return nil, err
	}
	var stats domain.DashboardStats
	if err := env.DecodeData(&stats); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &stats, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]domain.AdminUser, error) {
	env, err := c.call(ctx, "admin", &transport.Request{
		Method: "GET",
		Path:   "/admin/users",
		Auth:   transport.AuthAdmin,
	})
	if err != nil {
		return nil, err
	}
	var users []domain.AdminUser
	if err := env.DecodeData(&users); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return users, nil
}

func (c *Client) AdminSetUserBlocked(ctx context.Context, userID string, blocked bool) error {
	if userID == "" {
		return transport.NewInputError("user id is required")
	}
	_, err := c.call(ctx, "admin", &transport.Request{
		Method: "PATCH",
		Path:   "/admin/users/" + userID,
		Body:   map[string]bool{"blocked": blocked},
		Auth:   transport.AuthAdmin,
	})
	return err
}

func (c *Client) AdminOrders(ctx context.Context) ([]domain.Order, error) {
	env, err := c.call(ctx, "admin", &transport.Request{
		Method: "GET",
		Path:   "/admin/orders",
		Auth:   transport.AuthAdmin,
	})
	if err != nil {
		return nil, err
	}
	var orders []domain.Order
	if err := env.DecodeData(&orders); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return orders, nil
}
