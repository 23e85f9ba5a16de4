package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avandeursen/mosaic/internal/domain"
	"github.com/avandeursen/mosaic/internal/repository"
	"github.com/google/uuid"
)

type resourceService struct {
	resources repository.ResourceRepo
}

func NewResourceService(resources repository.ResourceRepo) ResourceService {
	return &resourceService{resources: resources}
}

// Create assigns an id, computes the materialized path from the parent, and
// persists the record.
func (s *resourceService) Create(ctx context.Context, r *domain.Resource) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Type == "" {
		r.Type = domain.TypeItem
	} else if !domain.ValidResourceTypes[string(r.Type)] {
		return fmt.Errorf("invalid resource type %q", r.Type)
	}
	if r.Status == "" {
		r.Status = domain.StatusActive
	}
	if r.CreatorID == "" {
		r.CreatorID = r.OwnerID
	}

	parentPath := ""
	if r.ParentID != nil {
		parent, err := s.resources.GetByID(ctx, *r.ParentID)
		if err != nil {
			return fmt.Errorf("resolving parent: %w", err)
		}
		parentPath = parent.Path
	}
	r.Path = domain.ChildPath(parentPath, r.ID)

	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.resources.Create(ctx, r)
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *resourceService) List(ctx context.Context, ownerID string) ([]*domain.Resource, error) {
	return s.resources.List(ctx, ownerID)
}

func (s *resourceService) ListChildren(ctx context.Context, parentID string) ([]*domain.Resource, error) {
	return s.resources.ListChildren(ctx, parentID)
}

func (s *resourceService) ListSubtree(ctx context.Context, rootID string) ([]*domain.Resource, error) {
	root, err := s.resources.GetByID(ctx, rootID)
	if err != nil {
		return nil, err
	}
	return s.resources.ListSubtree(ctx, root.Path)
}

func (s *resourceService) Update(ctx context.Context, r *domain.Resource) error {
	r.UpdatedAt = time.Now().UTC()
	return s.resources.Update(ctx, r)
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	return s.resources.MarkDeleted(ctx, id)
}
