package engine

import (
	"testing"

	"github.com/avandeursen/mosaic/internal/domain"
	"github.com/avandeursen/mosaic/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSet() []*domain.Resource {
	root := testutil.NewTestResource("Root", testutil.WithID("root"), testutil.WithType(domain.TypeFolder))
	a := testutil.NewTestResource("A", testutil.WithID("a"), testutil.WithParent(root))
	b := testutil.NewTestResource("B", testutil.WithID("b"), testutil.WithParent(root))
	a1 := testutil.NewTestResource("A1", testutil.WithID("a1"), testutil.WithParent(a))
	return []*domain.Resource{root, a, b, a1}
}

func treeShape(n *Node) []string {
	var shape []string
	n.Walk(func(node *Node) {
		shape = append(shape, node.ID)
	})
	return shape
}

func TestBuildTree_Shape(t *testing.T) {
	builder := NewTreeBuilder(nil)

	root := builder.Build(buildTestSet(), "root")
	require.NotNil(t, root)
	assert.Equal(t, []string{"root", "a", "a1", "b"}, treeShape(root))
	require.Len(t, root.Children, 2)
	assert.Equal(t, "A", root.Children[0].Title)
	assert.Equal(t, "B", root.Children[1].Title)
}

func TestBuildTree_Deterministic(t *testing.T) {
	builder := NewTreeBuilder(nil)
	records := buildTestSet()

	first := builder.Build(records, "root")
	second := builder.Build(records, "root")
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, treeShape(first), treeShape(second))
	assert.NotSame(t, first, second, "each build owns a fresh tree")
}

func TestBuildTree_ChildrenFollowInputOrder(t *testing.T) {
	builder := NewTreeBuilder(nil)

	root := testutil.NewTestResource("Root", testutil.WithID("root"))
	c1 := testutil.NewTestResource("zeta", testutil.WithID("c1"), testutil.WithParent(root))
	c2 := testutil.NewTestResource("alpha", testutil.WithID("c2"), testutil.WithParent(root))

	tree := builder.Build([]*domain.Resource{root, c1, c2}, "root")
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "zeta", tree.Children[0].Title, "input order, not title order")
	assert.Equal(t, "alpha", tree.Children[1].Title)
}

func TestBuildTree_MissingRootYieldsNil(t *testing.T) {
	builder := NewTreeBuilder(nil)
	assert.Nil(t, builder.Build(buildTestSet(), "nope"))
	assert.Nil(t, builder.Build(nil, "root"))
}

func TestBuildTree_OrphansAreDropped(t *testing.T) {
	builder := NewTreeBuilder(nil)

	root := testutil.NewTestResource("Root", testutil.WithID("root"))
	ghost := "ghost-parent"
	orphan := testutil.NewTestResource("Orphan", testutil.WithID("orphan"))
	orphan.ParentID = &ghost

	tree := builder.Build([]*domain.Resource{root, orphan}, "root")
	require.NotNil(t, tree)
	assert.Empty(t, tree.Children)
}

func TestBuildTree_ParentCycleTerminates(t *testing.T) {
	builder := NewTreeBuilder(nil)

	// a -> b -> a: corrupt ancestry must not loop forever.
	a := testutil.NewTestResource("A", testutil.WithID("a"))
	b := testutil.NewTestResource("B", testutil.WithID("b"))
	aID, bID := a.ID, b.ID
	a.ParentID = &bID
	b.ParentID = &aID

	tree := builder.Build([]*domain.Resource{a, b}, "a")
	require.NotNil(t, tree)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "b", tree.Children[0].ID)
	assert.Empty(t, tree.Children[0].Children, "cycle edge truncated")
}

func TestBuildTree_SelfReferenceTerminates(t *testing.T) {
	builder := NewTreeBuilder(nil)

	a := testutil.NewTestResource("A", testutil.WithID("a"))
	aID := a.ID
	a.ParentID = &aID

	tree := builder.Build([]*domain.Resource{a}, "a")
	require.NotNil(t, tree)
	assert.Empty(t, tree.Children)
}

func TestBuildTree_DuplicateIDFirstWriteWins(t *testing.T) {
	builder := NewTreeBuilder(nil)

	first := testutil.NewTestResource("First", testutil.WithID("dup"))
	second := testutil.NewTestResource("Second", testutil.WithID("dup"))

	tree := builder.Build([]*domain.Resource{first, second}, "dup")
	require.NotNil(t, tree)
	assert.Equal(t, "First", tree.Title)
}

func TestBuildTree_MirrorsRecordFieldsIntoMetadata(t *testing.T) {
	builder := NewTreeBuilder(nil)

	rec := testutil.NewTestResource("Item", testutil.WithID("i"),
		testutil.WithStatus(domain.StatusCompleted),
		testutil.WithMetadata(map[string]any{"amount": 3}),
	)
	rec.Description = "a thing"

	tree := builder.Build([]*domain.Resource{rec}, "i")
	require.NotNil(t, tree)
	assert.Equal(t, "completed", tree.Metadata[MetaStatus])
	assert.Equal(t, "a thing", tree.Metadata[MetaDescription])
	assert.Equal(t, 3, tree.Metadata["amount"])

	// The node owns a copy; mutating it must not leak into the record.
	tree.Metadata["amount"] = 99
	assert.Equal(t, 3, rec.Metadata["amount"])
}

func TestBuildTree_VariantFromMetadataOverridesType(t *testing.T) {
	builder := NewTreeBuilder(nil)

	plain := testutil.NewTestResource("Plain", testutil.WithID("p"), testutil.WithType(domain.TypeTask))
	fancy := testutil.NewTestResource("Fancy", testutil.WithID("f"),
		testutil.WithMetadata(map[string]any{MetaVariant: "progress_card"}))

	assert.Equal(t, "task", builder.Build([]*domain.Resource{plain}, "p").Variant)
	assert.Equal(t, "progress_card", builder.Build([]*domain.Resource{fancy}, "f").Variant)
}

func TestBuildTree_SkipsDeletedRecords(t *testing.T) {
	builder := NewTreeBuilder(nil)

	root := testutil.NewTestResource("Root", testutil.WithID("root"))
	gone := testutil.NewTestResource("Gone", testutil.WithID("gone"), testutil.WithParent(root))
	gone.IsDeleted = true

	tree := builder.Build([]*domain.Resource{root, gone}, "root")
	require.NotNil(t, tree)
	assert.Empty(t, tree.Children)
}

func TestBuildIndex(t *testing.T) {
	builder := NewTreeBuilder(nil)
	root := builder.Build(buildTestSet(), "root")

	index := BuildIndex(root)
	assert.Len(t, index, 4)
	assert.Equal(t, "A1", index["a1"].Title)
}
