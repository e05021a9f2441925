package api

import (
	"context"
	"encoding/json"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

type LoginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"-"`
}

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	UserType domain.Role `json:"userType"`
	Phone    string      `json:"phone,omitempty"`
	Location string      `json:"location,omitempty"`
}

// Login authenticates and persists the session atomically in the tier
// selected by RememberMe. A successful login re-arms the logout guard.
func (c *Client) Login(ctx context.Context, in LoginInput) (*domain.UserData, error) {
	if in.Email == "" || in.Password == "" {
		return nil, transport.NewInputError("email and password are required")
	}
	env, err := c.call(ctx, "auth", &transport.Request{
		Method: "POST",
		Path:   "/auth/login",
		Body:   in,
		Auth:   transport.AuthNone,
	})
	if err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, transport.NewServerError(200, env)
	}
	var user domain.UserData
	if len(env.User) > 0 {
		if err := json.Unmarshal(env.User, &user); err != nil {
			return nil, transport.NewServerError(200, env)
		}
	}
	if err := c.sessions.Set(ctx, env.Token, user, in.RememberMe); err != nil {
		return nil, err
	}
	c.loggingOut.Store(false)
	c.logger.Info("signed in", "role", user.UserType, "remember_me", in.RememberMe)
	return &user, nil
}

// Register creates an account. Registration is public; the caller signs in
// afterwards.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return transport.NewInputError("name, email and password are required")
	}
	if !in.UserType.Valid() || in.UserType == domain.RoleAdmin {
		return transport.NewInputError("userType must be farmer, expert or company")
	}
	_, err := c.call(ctx, "auth", &transport.Request{
		Method: "POST",
		Path:   "/auth/register",
		Body:   in,
		Auth:   transport.AuthNone,
	})
	return err
}

// Me fetches the caller's account record and updates the stored user data,
// preserving token and rememberMe.
func (c *Client) Me(ctx context.Context) (*domain.UserData, error) {
	env, err := c.call(ctx, "auth", &transport.Request{
		Method: "GET",
		Path:   "/auth/me",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var user domain.UserData
	raw := env.User
	if len(raw) == 0 {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	if sess, err := c.sessions.Get(ctx); err == nil {
		_ = c.sessions.Set(ctx, sess.Token, user, sess.RememberMe)
	}
	return &user, nil
}
