package domain

import (
	"strings"
	"time"
)

// Resource is the flat persisted record every dashboard item is stored as.
// Hierarchy is expressed through ParentID plus a materialized Path; the
// in-memory tree is derived from these records on every refresh.
type Resource struct {
	ID          string
	ParentID    *string
	Path        string // dot-delimited chain of sanitized ancestor ids, self included
	Type        ResourceType
	Title       string
	Description string
	Status      ResourceStatus
	Metadata    map[string]any
	ScheduledAt *time.Time
	OwnerID     string
	CreatorID   string
	IsShared    bool
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PathSeparator delimits ancestor ids inside a materialized path.
const PathSeparator = "."

// SanitizePathSegment makes an id safe for embedding in a materialized path.
// Dots would collide with the separator, so they become underscores.
func SanitizePathSegment(id string) string {
	return strings.ReplaceAll(id, PathSeparator, "_")
}

// ChildPath returns the materialized path for a record with the given id
// under parentPath. An empty parentPath yields a root path.
func ChildPath(parentPath, id string) string {
	seg := SanitizePathSegment(id)
	if parentPath == "" {
		return seg
	}
	return parentPath + PathSeparator + seg
}

// PathDepth reports how many ancestors (self included) a path encodes.
func PathDepth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, PathSeparator) + 1
}
