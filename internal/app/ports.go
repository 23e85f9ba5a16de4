package app

import "context"

// DashboardUseCase is the read-side port the presentation layer renders from.
type DashboardUseCase interface {
	GetDashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}
