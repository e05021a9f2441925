package api

import (
	"context"
	"time"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	return c.listNotifications(ctx, "/notifications")
}

// ExpertNotifications reads the expert-scoped feed, which includes
// consultation requests.
func (c *Client) ExpertNotifications(ctx context.Context) ([]domain.Notification, error) {
	return c.listNotifications(ctx, "/notifications/expert")
}

func (c *Client) listNotifications(ctx context.Context, path string) ([]domain.Notification, error) {
	env, err := c.call(ctx, "notifications", &transport.Request{
		Method: "GET",
		Path:   path,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var notifications []domain.Notification
	if err := env.DecodeData(&notifications); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return notifications, nil
}

func (c *Client) UnreadNotificationsCount(ctx context.Context) (int, error) {
	env, err := c.call(ctx, "notifications", &transport.Request{
		Method: "GET",
		Path:   "/notifications/unread-count",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return 0, err
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := env.DecodeData(&out); err != nil {
		return 0, transport.NewServerError(200, env)
	}
	return out.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return transport.NewInputError("notification id is required")
	}
	_, err := c.call(ctx, "notifications", &transport.Request{
		Method: "PATCH",
		Path:   "/notifications/" + notificationID + "/read",
		Auth:   transport.AuthUser,
	})
	return err
}

func (c *Client) DeleteNotification(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return transport.NewInputError("notification id is required")
	}
	_, err := c.call(ctx, "notifications", &transport.Request{
		Method: "DELETE",
		Path:   "/notifications/" + notificationID,
		Auth:   transport.AuthUser,
	})
	return err
}

func (c *Client) ClearAllNotifications(ctx context.Context) error {
	_, err := c.call(ctx, "notifications", &transport.Request{
		Method: "DELETE",
		Path:   "/notifications/clear-all",
		Auth:   transport.AuthUser,
	})
	return err
}

// WatchUnreadCount polls the unread count until ctx is cancelled. A failed
// poll is skipped so the last delivered count stays on screen; the ticker
// stops with the owning view to avoid orphaned requests after logout.
func (c *Client) WatchUnreadCount(ctx context.Context, interval time.Duration, deliver func(int)) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		count, err := c.UnreadNotificationsCount(ctx)
		if err == nil {
			deliver(count)
		} else if transport.IsAuthError(err) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
