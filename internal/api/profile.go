package api

import (
	"context"
	"io"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

// Profile returns the signed-in account's profile from the role-specific
// endpoint.
func (c *Client) Profile(ctx context.Context) (*domain.UserData, error) {
	eps, err := c.endpointsForSession(ctx)
	if err != nil {
		return nil, err
	}
	env, err := c.call(ctx, "profile", &transport.Request{
		Method: "GET",
		Path:   eps.profile,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var user domain.UserData
	if err := env.DecodeData(&user); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &user, nil
}

// UpdateProfile sends a partial update to the role-specific profile
// endpoint and refreshes the stored user data on success.
func (c *Client) UpdateProfile(ctx context.Context, updates map[string]any) (*domain.UserData, error) {
	if len(updates) == 0 {
		return nil, transport.NewInputError("nothing to update")
	}
	eps, err := c.endpointsForSession(ctx)
	if err != nil {
		return nil, err
	}
	env, err := c.call(ctx, "profile", &transport.Request{
		Method: "PUT",
		Path:   eps.profile,
		Body:   updates,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var user domain.UserData
	if err := env.DecodeData(&user); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	if sess, serr := c.sessions.Get(ctx); serr == nil && user.ID != "" {
		_ = c.sessions.Set(ctx, sess.Token, user, sess.RememberMe)
	}
	return &user, nil
}

// UploadProfileImage pushes a new profile image through the multipart path.
// The pipeline leaves the content type to the multipart writer.
func (c *Client) UploadProfileImage(ctx context.Context, fileName string, file io.Reader) (string, error) {
	if file == nil {
		return "", transport.NewInputError("no image file provided")
	}
	eps, err := c.endpointsForSession(ctx)
	if err != nil {
		return "", err
	}
	env, err := c.call(ctx, "profile", &transport.Request{
		Method: "POST",
		Path:   eps.uploadImage,
		Auth:   transport.AuthUser,
		Multipart: &transport.MultipartPayload{
			FileField: "profileImage",
			FileName:  fileName,
			File:      file,
		},
	})
	if err != nil {
		return "", err
	}
	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := env.DecodeData(&out); err != nil {
		return "", transport.NewServerError(200, env)
	}
	if out.ImageURL != "" {
		if sess, serr := c.sessions.Get(ctx); serr == nil {
			user := sess.User
			user.ProfileImage = out.ImageURL
			_ = c.sessions.Set(ctx, sess.Token, user, sess.RememberMe)
		}
	}
	return out.ImageURL, nil
}
