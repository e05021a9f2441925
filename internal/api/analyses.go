package api

import (
	"context"

	"github.com/agromarket/agromarket-go/internal/transport"
)

// PlantAnalysisRecord is the server-side copy of an analysis. The local
// history cache in diagnose holds the offline copy; these endpoints sync
// the authoritative one.
type PlantAnalysisRecord struct {
	ID        string   `json:"_id,omitempty"`
	Date      string   `json:"date"`
	Condition string   `json:"condition"`
	Severity  string   `json:"severity"`
	Treatment []string `json:"treatment"`
	Image     string   `json:"image,omitempty"`
}

func (c *Client) PlantAnalyses(ctx context.Context) ([]PlantAnalysisRecord, error) {
	env, err := c.call(ctx, "analyses", &transport.Request{
		Method: "GET",
		Path:   "/plant-analyses",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var records []PlantAnalysisRecord
	if err := env.DecodeData(&records); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return records, nil
}

func (c *Client) SavePlantAnalysis(ctx context.Context, rec PlantAnalysisRecord) (*PlantAnalysisRecord, error) {
	if rec.Condition == "" {
		return nil, transport.NewInputError("analysis condition is required")
	}
	env, err := c.call(ctx, "analyses", &transport.Request{
		Method: "POST",
		Path:   "/plant-analyses",
		Body:   rec,
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var saved PlantAnalysisRecord
	if err := env.DecodeData(&saved); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &saved, nil
}

func (c *Client) DeletePlantAnalysis(ctx context.Context, analysisID string) error {
	if analysisID == "" {
		return transport.NewInputError("analysis id is required")
	}
	_, err := c.call(ctx, "analyses", &transport.Request{
		Method: "DELETE",
		Path:   "/plant-analyses/" + analysisID,
		Auth:   transport.AuthUser,
	})
	return err
}
