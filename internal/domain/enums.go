package domain

type ResourceStatus string

const (
	StatusActive    ResourceStatus = "active"
	StatusCompleted ResourceStatus = "completed"
	StatusArchived  ResourceStatus = "archived"
)

// Next advances the status along the fixed cycle
// active -> completed -> archived -> active. Unrecognized values reset to
// active so a corrupt record can never escape the cycle.
func (s ResourceStatus) Next() ResourceStatus {
	switch s {
	case StatusActive:
		return StatusCompleted
	case StatusCompleted:
		return StatusArchived
	default:
		return StatusActive
	}
}

type ResourceType string

const (
	TypeFolder  ResourceType = "folder"
	TypeProject ResourceType = "project"
	TypeTask    ResourceType = "task"
	TypeItem    ResourceType = "item"
	TypeEvent   ResourceType = "event"
)

// ValidResourceTypes is the canonical set of accepted resource type strings.
var ValidResourceTypes = map[string]bool{
	string(TypeFolder): true, string(TypeProject): true, string(TypeTask): true,
	string(TypeItem): true, string(TypeEvent): true,
}
