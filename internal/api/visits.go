package api

import (
	"context"
	"time"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

type FarmerVisitInput struct {
	ExpertID    string    `json:"expert"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Notes       string    `json:"notes,omitempty"`
}

func (c *Client) FarmerVisits(ctx context.Context) ([]domain.FarmerVisit, error) {
	env, err := c.call(ctx, "visits", &transport.Request{
		Method: "GET",
		Path:   "/farmer-visits",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var visits []domain.FarmerVisit
	if err := env.DecodeData(&visits); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return visits, nil
}

func (c *Client) CreateFarmerVisit(ctx context.Context, in FarmerVisitInput) (*domain.FarmerVisit, error) {
	if in.ExpertID == "" {
		return nil, transport.NewInputError("expert id is required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, transport.NewInputError("a visit date is required")
	}
	env, err := c.call(ctx, "visits", &transport.Request{
		Method: "POST",
		Path:   "/farmer-visits",
		Body:   in,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var visit domain.FarmerVisit
	if err := env.DecodeData(&visit); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &visit, nil
}

func (c *Client) UpdateFarmerVisitStatus(ctx context.Context, visitID, status string) error {
	if visitID == "" || status == "" {
		return transport.NewInputError("visit id and status are required")
	}
	_, err := c.call(ctx, "visits", &transport.Request{
		Method: "PATCH",
		Path:   "/farmer-visits/" + visitID,
		Body:   map[string]string{"status": status},
		Auth:   transport.AuthUser,
	})
	return err
}

// AddFarm registers a new farm on the farmer's profile.
func (c *Client) AddFarm(ctx context.Context, farm domain.Farm) (*domain.Farm, error) {
	if farm.Name == "" {
		return nil, transport.NewInputError("farm name is required")
	}
	env, err := c.call(ctx, "farms", &transport.Request{
		Method: "POST",
		Path:   "/farmers/farms",
		Body:   farm,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var created domain.Farm
	if err := env.DecodeData(&created); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &created, nil
}
