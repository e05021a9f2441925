package api

import (
	"context"
	"io"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

func (c *Client) ChatRooms(ctx context.Context) ([]domain.ChatRoom, error) {
	env, err := c.call(ctx, "chat", &transport.Request{
		Method: "GET",
		Path:   "/chat/rooms",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var rooms []domain.ChatRoom
	if err := env.DecodeData(&rooms); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return rooms, nil
}

func (c *Client) ChatMessages(ctx context.Context, roomID string) ([]domain.ChatMessage, error) {
	if roomID == "" {
		return nil, transport.NewInputError("chat room id is required")
	}
	env, err := c.call(ctx, "chat", &transport.Request{
		Method: "GET",
		Path:   "/chat/rooms/" + roomID + "/messages",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var messages []domain.ChatMessage
	if err := env.DecodeData(&messages); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return messages, nil
}

func (c *Client) SendChatMessage(ctx context.Context, roomID, text string) (*domain.ChatMessage, error) {
	if roomID == "" {
		return nil, transport.NewInputError("chat room id is required")
	}
	if text == "" {
		return nil, transport.NewInputError("message text is required")
	}
	env, err := c.call(ctx, "chat", &transport.Request{
		Method: "POST",
		Path:   "/chat/rooms/" + roomID + "/messages",
		Body:   map[string]string{"text": text},
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var msg domain.ChatMessage
	if err := env.DecodeData(&msg); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &msg, nil
}

// SendChatImage uploads an image into a chat room through the multipart
// path.
func (c *Client) SendChatImage(ctx context.Context, roomID, fileName string, file io.Reader) (*domain.ChatMessage, error) {
	if roomID == "" {
		return nil, transport.NewInputError("chat room id is required")
	}
	if file == nil {
		return nil, transport.NewInputError("no image file provided")
	}
	env, err := c.call(ctx, "chat", &transport.Request{
		Method: "POST",
		Path:   "/chat/rooms/" + roomID + "/images",
		Auth:   transport.AuthUser,
		Multipart: &transport.MultipartPayload{
			FileField: "image",
			FileName:  fileName,
			File:      file,
		},
	})
	if err != nil {
		return nil, err
	}
	var msg domain.ChatMessage
	if err := env.DecodeData(&msg); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &msg, nil
}
