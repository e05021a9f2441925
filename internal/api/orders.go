package api

import (
	"context"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

type PlaceOrderInput struct {
	Items           []domain.OrderItem `json:"items"`
	ShippingAddress string             `json:"shippingAddress,omitempty"`
	Phone           string             `json:"phone,omitempty"`
}

func (c *Client) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, transport.NewInputError("order must contain at least one item")
	}
	env, err := c.call(ctx, "orders", &transport.Request{
		Method: "POST",
		Path:   "/orders",
		Body:   in,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var order domain.Order
	if err := env.DecodeData(&order); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &order, nil
}

func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	return c.listOrders(ctx, "/orders/my-orders")
}

// SellerOrders lists orders placed against the caller's listings; used by
// company and farmer seller views.
func (c *Client) SellerOrders(ctx context.Context) ([]domain.Order, error) {
	return c.listOrders(ctx, "/orders/seller-orders")
}

func (c *Client) listOrders(ctx context.Context, path string) ([]domain.Order, error) {
	env, err := c.call(ctx, "orders", &transport.Request{
		Method: "GET",
		Path:   path,
		Auth:   transport.AuthUser,
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

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if orderID == "" || status == "" {
		return transport.NewInputError("order id and status are required")
	}
	_, err := c.call(ctx, "orders", &transport.Request{
		Method: "PUT",
		Path:   "/orders/" + orderID + "/status",
		Body:   map[string]string{"status": status},
		Auth:   transport.AuthUser,
	})
	return err
}
