package api

import (
	"context"
	"net/url"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

func (c *Client) AvailableExperts(ctx context.Context) ([]domain.Expert, error) {
	env, err := c.call(ctx, "experts", &transport.Request{
		Method: "GET",
		Path:   "/experts/available",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var experts []domain.Expert
	if err := env.DecodeData(&experts); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return experts, nil
}

// SearchExperts filters the expert directory. Filters map straight onto
// query parameters; empty values are dropped.
func (c *Client) SearchExperts(ctx context.Context, query string, filters map[string]string) ([]domain.Expert, error) {
	params := url.Values{}
	if query != "" {
		params.Set("search", query)
	}
	for k, v := range filters {
		if v != "" {
			params.Set(k, v)
		}
	}
	env, err := c.call(ctx, "experts", &transport.Request{
		Method: "GET",
		Path:   "/experts/search",
		Query:  params,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var experts []domain.Expert
	if err := env.DecodeData(&experts); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return experts, nil
}

func (c *Client) SearchCompanies(ctx context.Context, query string) ([]domain.Company, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	env, err := c.call(ctx, "companies", &transport.Request{
		Method: "GET",
		Path:   "/companies/search",
		Query:  params,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var companies []domain.Company
	if err := env.DecodeData(&companies); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return companies, nil
}

type ConsultOrderInput struct {
	ExpertID    string `json:"expert"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
}

func (c *Client) CreateConsultOrder(ctx context.Context, in ConsultOrderInput) (*domain.ConsultOrder, error) {
	if in.ExpertID == "" || in.Subject == "" {
		return nil, transport.NewInputError("expert id and subject are required")
	}
	env, err := c.call(ctx, "consult", &transport.Request{
		Method: "POST",
		Path:   "/consult-orders",
		Body:   in,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var order domain.ConsultOrder
	if err := env.DecodeData(&order); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &order, nil
}

// ExpertConsultOrders lists consultations assigned to the signed-in expert.
func (c *Client) ExpertConsultOrders(ctx context.Context) ([]domain.ConsultOrder, error) {
	env, err := c.call(ctx, "consult", &transport.Request{
		Method: "GET",
		Path:   "/consult-orders/expert",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var orders []domain.ConsultOrder
	if err := env.DecodeData(&orders); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return orders, nil
}

func (c *Client) UpdateConsultOrderStatus(ctx context.Context, orderID, status string) error {
	if orderID == "" || status == "" {
		return transport.NewInputError("consult order id and status are required")
	}
	_, err := c.call(ctx, "consult", &transport.Request{
		Method: "PATCH",
		Path:   "/consult-orders/" + orderID,
		Body:   map[string]string{"status": status},
		Auth:   transport.AuthUser,
	})
	return err
}
