package api

import (
	"context"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

func (c *Client) Cart(ctx context.Context) (*domain.Cart, error) {
	env, err := c.call(ctx, "cart", &transport.Request{
		Method: "GET",
		Path:   "/cart",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var cart domain.Cart
	if err := env.DecodeData(&cart); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &cart, nil
}

func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return transport.NewInputError("product id is required")
	}
	if quantity <= 0 {
		return transport.NewInputError("quantity must be positive")
	}
	_, err := c.call(ctx, "cart", &transport.Request{
		Method: "POST",
		Path:   "/cart",
		Body:   map[string]any{"productId": productID, "quantity": quantity},
		Auth:   transport.AuthUser,
	})
	return err
}

func (c *Client) RemoveFromCart(ctx context.Context, itemID string) error {
	if itemID == "" {
		return transport.NewInputError("cart item id is required")
	}
	_, err := c.call(ctx, "cart", &transport.Request{
		Method: "DELETE",
		Path:   "/cart/" + itemID,
		Auth:   transport.AuthUser,
	})
	return err
}

func (c *Client) UpdateCartQuantity(ctx context.Context, itemID string, quantity int) error {
	if itemID == "" {
		return transport.NewInputError("cart item id is required")
	}
	if quantity <= 0 {
		return transport.NewInputError("quantity must be positive")
	}
	_, err := c.call(ctx, "cart", &transport.Request{
		Method: "PATCH",
		Path:   "/cart/" + itemID,
		Body:   map[string]any{"quantity": quantity},
		Auth:   transport.AuthUser,
	})
	return err
}

func (c *Client) Favorites(ctx context.Context) ([]domain.Product, error) {
	env, err := c.call(ctx, "favorites", &transport.Request{
		Method: "GET",
		Path:   "/favorites",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := env.DecodeData(&products); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return products, nil
}

// ToggleFavorite flips a product's favorite state server-side and reports
// the resulting state.
func (c *Client) ToggleFavorite(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, transport.NewInputError("product id is required")
	}
	env, err := c.call(ctx, "favorites", &transport.Request{
		Method: "POST",
		Path:   "/favorites",
		Body:   map[string]string{"productId": productID},
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return false, err
	}
	var out struct {
		Favorited bool `json:"favorited"`
	}
	if err := env.DecodeData(&out); err != nil {
		return false, transport.NewServerError(200, env)
	}
	return out.Favorited, nil
}
