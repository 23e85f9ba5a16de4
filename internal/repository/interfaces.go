package repository

import (
	"context"

	"github.com/avandeursen/mosaic/internal/domain"
)

// ResourceRepo is the persistence collaborator for flat dashboard records.
// Hard deletes never happen; MarkDeleted flips the soft-delete marker and
// every read excludes marked rows.
type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, ownerID string) ([]*domain.Resource, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Resource, error)
	// ListSubtree returns the record plus all descendants whose materialized
	// path extends pathPrefix, in path order.
	ListSubtree(ctx context.Context, pathPrefix string) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	MarkDeleted(ctx context.Context, id string) error
}

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}
