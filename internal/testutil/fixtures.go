package testutil

import (
	"time"

	"github.com/avandeursen/mosaic/internal/domain"
	"github.com/google/uuid"
)

// TestOwner is the owner id used by all fixture resources.
const TestOwner = "owner-1"

// Resource options
type ResourceOption func(*domain.Resource)

func WithID(id string) ResourceOption {
	return func(r *domain.Resource) {
		r.ID = id
		r.Path = domain.SanitizePathSegment(id)
	}
}

func WithParent(parent *domain.Resource) ResourceOption {
	return func(r *domain.Resource) {
		r.ParentID = &parent.ID
		r.Path = domain.ChildPath(parent.Path, r.ID)
	}
}

func WithType(tp domain.ResourceType) ResourceOption {
	return func(r *domain.Resource) {
		r.Type = tp
	}
}

func WithStatus(s domain.ResourceStatus) ResourceOption {
	return func(r *domain.Resource) {
		r.Status = s
	}
}

func WithMetadata(m map[string]any) ResourceOption {
	return func(r *domain.Resource) {
		r.Metadata = m
	}
}

func WithScheduledAt(at time.Time) ResourceOption {
	return func(r *domain.Resource) {
		r.ScheduledAt = &at
	}
}

func WithCreatedAt(at time.Time) ResourceOption {
	return func(r *domain.Resource) {
		r.CreatedAt = at
		r.UpdatedAt = at
	}
}

// NewTestResource builds a persisted-shape record with sensible defaults.
func NewTestResource(title string, opts ...ResourceOption) *domain.Resource {
	now := time.Now().UTC()
	id := uuid.New().String()
	r := &domain.Resource{
		ID:        id,
		Path:      domain.SanitizePathSegment(id),
		Type:      domain.TypeItem,
		Title:     title,
		Status:    domain.StatusActive,
		Metadata:  map[string]any{},
		OwnerID:   TestOwner,
		CreatorID: TestOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestProfile builds the single-owner profile row.
func NewTestProfile() *domain.Profile {
	now := time.Now().UTC()
	return &domain.Profile{
		OwnerID:     TestOwner,
		DisplayName: "Test Owner",
		Locale:      "en-US",
		Currency:    "USD",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
