package api

import (
	"context"
	"fmt"

	"greenlight/internal/config"
	"greenlight/internal/production"
	"greenlight/internal/services"
)

// ShowProductionRequest carries the inputs for ShowProduction.
type ShowProductionRequest struct {
	Config  *config.Config
	BriefID string
}

// ShowProduction fetches one production with its latest gate results.
func ShowProduction(ctx context.Context, req ShowProductionRequest) (ProductionView, error) {
	cfg := req.Config
	if cfg == nil {
		return ProductionView{}, fmt.Errorf("configuration is required")
	}

	store, err := production.Open(cfg)
	if err != nil {
		return ProductionView{}, fmt.Errorf("open production store: %w", err)
	}
	defer store.Close()

	p, err := store.GetByBrief(ctx, req.BriefID)
	if err != nil {
		return ProductionView{}, err
	}
	if p == nil {
		return ProductionView{}, services.Wrap(services.ErrNotFound, "api", "show", fmt.Sprintf("no production for brief %s", req.BriefID), nil)
	}
	return FromProduction(p)
}

// ListProductionsRequest carries the inputs for ListProductions.
type ListProductionsRequest struct {
	Config   *config.Config
	Status   string
	Vertical string
	Limit    int
	Offset   int
}

// ListProductions returns productions matching the optional status and
// vertical filters, oldest first.
func ListProductions(ctx context.Context, req ListProductionsRequest) (ProductionListResponse, error) {
	cfg := req.Config
	if cfg == nil {
		return ProductionListResponse{}, fmt.Errorf("configuration is required")
	}

	filter := production.Filter{Vertical: req.Vertical, Limit: req.Limit, Offset: req.Offset}
	if req.Status != "" {
		status, ok := production.ParseStatus(req.Status)
		if !ok {
			return ProductionListResponse{}, services.Wrap(services.ErrValidation, "api", "list", fmt.Sprintf("unknown status %q", req.Status), nil)
		}
		filter.Status = status
	}

	store, err := production.Open(cfg)
	if err != nil {
		return ProductionListResponse{}, fmt.Errorf("open production store: %w", err)
	}
	defer store.Close()

	productions, err := store.List(ctx, filter)
	if err != nil {
		return ProductionListResponse{}, err
	}

	resp := ProductionListResponse{Items: make([]ProductionView, 0, len(productions))}
	for _, p := range productions {
		view, err := FromProduction(p)
		if err != nil {
			return ProductionListResponse{}, err
		}
		resp.Items = append(resp.Items, view)
	}
	return resp, nil
}
