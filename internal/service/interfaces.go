package service

import (
	"context"

	"github.com/avandeursen/mosaic/internal/app"
	"github.com/avandeursen/mosaic/internal/domain"
	"github.com/avandeursen/mosaic/internal/engine"
)

type ResourceService interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, ownerID string) ([]*domain.Resource, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Resource, error)
	ListSubtree(ctx context.Context, rootID string) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
}

type ProfileService interface {
	// Get returns the stored profile, or sensible defaults when none exists.
	Get(ctx context.Context) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

type DashboardService interface {
	GetDashboard(ctx context.Context, req app.DashboardRequest) (*app.DashboardResponse, error)
	// Slots returns the profile-configured value resolver used for rendering.
	Slots(ctx context.Context) (*engine.SlotResolver, error)
}
