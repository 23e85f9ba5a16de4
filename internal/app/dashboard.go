package app

import (
	"github.com/avandeursen/mosaic/internal/engine"
)

// DashboardRequest asks for one rendered view over a subtree.
type DashboardRequest struct {
	// RootID names the record the tree is built from.
	RootID string
	// Aggregation, when set, additionally computes chart buckets over the tree.
	Aggregation *engine.AggregationConfig
}

// NewDashboardRequest returns a request with defaults applied.
func NewDashboardRequest(rootID string) DashboardRequest {
	return DashboardRequest{RootID: rootID}
}

// DashboardResponse is the renderable result. A nil Root is the documented
// empty state (the root id did not resolve), not an error.
type DashboardResponse struct {
	Root        *engine.Node
	NodeCount   int
	Aggregation *engine.AggregatedData
	Warnings    []string
}
