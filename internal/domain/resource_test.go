package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCycle(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusActive.Next())
	assert.Equal(t, StatusArchived, StatusCompleted.Next())
	assert.Equal(t, StatusActive, StatusArchived.Next())
}

func TestStatusCycleRecoversFromUnknown(t *testing.T) {
	assert.Equal(t, StatusActive, ResourceStatus("garbage").Next())
}

func TestValidResourceTypesIsClosedOverConstants(t *testing.T) {
	for _, tp := range []ResourceType{TypeFolder, TypeProject, TypeTask, TypeItem, TypeEvent} {
		assert.True(t, ValidResourceTypes[string(tp)], "%s must be accepted", tp)
	}
	assert.Len(t, ValidResourceTypes, 5, "no type string without a constant")
	assert.False(t, ValidResourceTypes["note"])
}

func TestChildPath(t *testing.T) {
	assert.Equal(t, "a", ChildPath("", "a"))
	assert.Equal(t, "a.b", ChildPath("a", "b"))
}

func TestChildPathSanitizesSeparator(t *testing.T) {
	// Dots inside an id would corrupt the ancestry chain.
	assert.Equal(t, "a.b_c", ChildPath("a", "b.c"))
}

func TestPathDepth(t *testing.T) {
	assert.Equal(t, 0, PathDepth(""))
	assert.Equal(t, 1, PathDepth("a"))
	assert.Equal(t, 3, PathDepth("a.b.c"))
}
