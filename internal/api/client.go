// Package api is the domain façade: one method per backend operation, each
// a single trip through the authenticated request pipeline with envelope
// unwrapping and error normalization.
package api

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/observability"
	"github.com/agromarket/agromarket-go/internal/session"
	"github.com/agromarket/agromarket-go/internal/transport"
)

// RedirectFunc is invoked after teardown so the embedding surface can send
// the user to its login entry point. The CLI prints a hint; a UI navigates.
type RedirectFunc func()

type Client struct {
	pipe       *transport.Pipeline
	sessions   *session.Manager
	logger     *slog.Logger
	uploadsURL string
	redirect   RedirectFunc

	// loggingOut guards the 401 teardown: a burst of unauthorized responses
	// tears the session down once, and a 401 racing the teardown itself
	// cannot re-trigger it. Reset on the next successful login and on
	// explicit user logout.
	loggingOut atomic.Bool
}

func NewClient(pipe *transport.Pipeline, uploadsURL string, logger *slog.Logger, redirect RedirectFunc) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if redirect == nil {
		redirect = func() {}
	}
	c := &Client{
		pipe:       pipe,
		sessions:   pipe.Sessions(),
		logger:     logger,
		uploadsURL: strings.TrimRight(uploadsURL, "/"),
		redirect:   redirect,
	}
	pipe.SetLogoutHook(c.forceLogout)
	return c
}

// Sessions exposes the session manager for surfaces that need read access
// (current role, signed-in state).
func (c *Client) Sessions() *session.Manager { return c.sessions }

// forceLogout is the session lifecycle controller: process-wide teardown,
// invoked from the 401 handler and from user-initiated logout.
func (c *Client) forceLogout(ctx context.Context, trigger string) {
	if !c.loggingOut.CompareAndSwap(false, true) {
		return
	}
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Warn("session clear failed during logout", "error", err)
	}
	observability.RecordLogout(trigger)
	c.logger.Info("signed out", "trigger", trigger)
	c.redirect()
}

// Logout notifies the server on a best-effort basis, then runs the same
// teardown the 401 handler uses. Calling it while signed out is a no-op
// beyond the redirect: the guard dedupes 401 bursts, not explicit user
// intent, so it is re-armed here before the teardown runs.
func (c *Client) Logout(ctx context.Context) {
	if _, err := c.sessions.Get(ctx); err == nil {
		notifyCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if _, err := c.pipe.Do(notifyCtx, &transport.Request{
			Method: "POST",
			Path:   "/auth/logout",
			Auth:   transport.AuthUser,
		}); err != nil {
			c.logger.Debug("server logout failed, continuing with local cleanup", "error", err)
		}
		cancel()
	}
	c.loggingOut.Store(false)
	c.forceLogout(ctx, "user")
}

// ImageURL resolves a stored image path against the uploads origin.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.uploadsURL + path
}

// roleEndpoints is the per-role endpoint set, resolved from the session
// once per call site instead of string-branching inside each function.
type roleEndpoints struct {
	profile     string
	uploadImage string
}

var endpointsByRole = map[domain.Role]roleEndpoints{
	domain.RoleFarmer:  {profile: "/farmers/profile", uploadImage: "/users/upload-image"},
	domain.RoleExpert:  {profile: "/experts/profile", uploadImage: "/experts/upload-image"},
	domain.RoleCompany: {profile: "/users/profile", uploadImage: "/users/upload-image"},
}

func (c *Client) endpointsForSession(ctx context.Context) (roleEndpoints, error) {
	sess, err := c.sessions.Get(ctx)
	if err != nil {
		return roleEndpoints{}, transport.NewInputError("not signed in")
	}
	eps, ok := endpointsByRole[sess.User.UserType]
	if !ok {
		return roleEndpoints{}, transport.NewInputError("unsupported account role: " + string(sess.User.UserType))
	}
	return eps, nil
}

// call runs one façade request and records the outcome.
func (c *Client) call(ctx context.Context, group string, req *transport.Request) (*transport.Envelope, error) {
	env, err := c.pipe.Do(ctx, req)
	if err != nil {
		observability.RecordAPICall(group, "error")
		return nil, err
	}
	if !env.Success {
		observability.RecordAPICall(group, "rejected")
		return nil, transport.NewServerError(200, env)
	}
	observability.RecordAPICall(group, "success")
	return env, nil
}
