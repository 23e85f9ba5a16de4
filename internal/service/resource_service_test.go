package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandeursen/mosaic/internal/domain"
	"github.com/avandeursen/mosaic/internal/repository"
	"github.com/avandeursen/mosaic/internal/testutil"
)

func newResourceService(t *testing.T) (ResourceService, repository.ResourceRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteResourceRepo(database)
	return NewResourceService(repo), repo
}

func TestResourceService_Create_AssignsIDAndPath(t *testing.T) {
	svc, _ := newResourceService(t)
	ctx := context.Background()

	r := &domain.Resource{Title: "Groceries", OwnerID: testutil.TestOwner}
	require.NoError(t, svc.Create(ctx, r))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, domain.SanitizePathSegment(r.ID), r.Path)
	assert.Equal(t, domain.TypeItem, r.Type)
	assert.Equal(t, domain.StatusActive, r.Status)
	assert.Equal(t, testutil.TestOwner, r.CreatorID)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestResourceService_Create_ChildPathUnderParent(t *testing.T) {
	svc, _ := newResourceService(t)
	ctx := context.Background()

	parent := &domain.Resource{Title: "Budget", OwnerID: testutil.TestOwner, Type: domain.TypeFolder}
	require.NoError(t, svc.Create(ctx, parent))

	child := &domain.Resource{Title: "August", OwnerID: testutil.TestOwner, ParentID: &parent.ID}
	require.NoError(t, svc.Create(ctx, child))

	assert.Equal(t, domain.ChildPath(parent.Path, child.ID), child.Path)
}

func TestResourceService_Create_RejectsUnknownType(t *testing.T) {
	svc, _ := newResourceService(t)

	r := &domain.Resource{Title: "Odd", OwnerID: testutil.TestOwner, Type: "spreadsheet"}
	err := svc.Create(context.Background(), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid resource type")
}

func TestResourceService_Create_UnknownParentFails(t *testing.T) {
	svc, _ := newResourceService(t)

	missing := "no-such-parent"
	r := &domain.Resource{Title: "Orphan", OwnerID: testutil.TestOwner, ParentID: &missing}
	err := svc.Create(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResourceService_ListSubtree(t *testing.T) {
	svc, repo := newResourceService(t)
	ctx := context.Background()

	root := testutil.NewTestResource("Root", testutil.WithID("root"))
	a := testutil.NewTestResource("A", testutil.WithID("a"), testutil.WithParent(root))
	b := testutil.NewTestResource("B", testutil.WithID("b"), testutil.WithParent(a))
	other := testutil.NewTestResource("Elsewhere", testutil.WithID("elsewhere"))
	for _, r := range []*domain.Resource{root, a, b, other} {
		require.NoError(t, repo.Create(ctx, r))
	}

	subtree, err := svc.ListSubtree(ctx, "root")
	require.NoError(t, err)
	require.Len(t, subtree, 3)
	ids := []string{subtree[0].ID, subtree[1].ID, subtree[2].ID}
	assert.Equal(t, []string{"root", "a", "b"}, ids)
}

func TestResourceService_Delete_SoftDeletes(t *testing.T) {
	svc, repo := newResourceService(t)
	ctx := context.Background()

	r := testutil.NewTestResource("Gone", testutil.WithID("gone"))
	require.NoError(t, repo.Create(ctx, r))

	require.NoError(t, svc.Delete(ctx, "gone"))

	_, err := svc.GetByID(ctx, "gone")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
