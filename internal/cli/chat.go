package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newChatCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "chat", Short: "Message buyers, sellers and experts"}

	rooms := &cobra.Command{
		Use:   "rooms",
		Short: "List your chat rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading rooms", func(ctx context.Context, a *app) ([]string, error) {
				rooms, err := a.client.ChatRooms(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(rooms))
				for _, r := range rooms {
					lines = append(lines, fmt.Sprintf("%s  %s", r.ID, r.LastMessage))
				}
				if len(lines) == 0 {
					lines = []string{"no conversations yet"}
				}
				return lines, nil
			})
		},
	}

	messages := &cobra.Command{
		Use:   "messages <room-id>",
		Short: "Show a room's messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading messages", func(ctx context.Context, a *app) ([]string, error) {
				messages, err := a.client.ChatMessages(ctx, args[0])
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(messages))
				for _, m := range messages {
					body := m.Text
					if body == "" && m.Image != "" {
						body = "[image] " + a.client.ImageURL(m.Image)
					}
					lines = append(lines, fmt.Sprintf("%s  %s: %s", m.CreatedAt.Local().Format("15:04"), m.SenderID, body))
				}
				if len(lines) == 0 {
					lines = []string{"no messages"}
				}
				return lines, nil
			})
		},
	}

	var text, imagePath string
	send := &cobra.Command{
		Use:   "send <room-id>",
		Short: "Send a message or image to a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "sending message", func(ctx context.Context, a *app) ([]string, error) {
				if imagePath != "" {
					file, err := os.Open(imagePath)
					if err != nil {
						return nil, fmt.Errorf("open image: %w", err)
					}
					defer func() { _ = file.Close() }()
					if _, err := a.client.SendChatImage(ctx, args[0], imagePath, file); err != nil {
						return nil, err
					}
					return []string{"image sent"}, nil
				}
				if _, err := a.client.SendChatMessage(ctx, args[0], text); err != nil {
					return nil, err
				}
				return []string{"message sent"}, nil
			})
		},
	}
	send.Flags().StringVar(&text, "text", "", "message text")
	send.Flags().StringVar(&imagePath, "image", "", "path to an image to send")

	cmd.AddCommand(rooms, messages, send)
	return cmd
}
