package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avandeursen/mosaic/internal/app"
	"github.com/avandeursen/mosaic/internal/engine"
	"github.com/avandeursen/mosaic/internal/repository"
)

type dashboardService struct {
	resources repository.ResourceRepo
	profiles  repository.ProfileRepo
	cache     *engine.Cache
	builder   *engine.TreeBuilder
	logger    *slog.Logger
	observer  UseCaseObserver

	// Lazily built from the owner profile; the aggregator is long-lived so
	// group colors stay stable across renders.
	mu    sync.Mutex
	slots *engine.SlotResolver
	agg   *engine.Aggregator
}

// NewDashboardService creates the read-side service that turns persisted
// records into renderable trees and chart data.
func NewDashboardService(
	resources repository.ResourceRepo,
	profiles repository.ProfileRepo,
	cache *engine.Cache,
	logger *slog.Logger,
	observer UseCaseObserver,
) DashboardService {
	if cache == nil {
		cache = engine.NewCache()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &dashboardService{
		resources: resources,
		profiles:  profiles,
		cache:     cache,
		builder:   engine.NewTreeBuilder(logger),
		logger:    logger,
		observer:  observer,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, req app.DashboardRequest) (resp *app.DashboardResponse, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "dashboard.get", start, err, map[string]any{"root_id": req.RootID})
	}()

	resp = &app.DashboardResponse{}

	root, err := s.resources.GetByID(ctx, req.RootID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Empty state, not an error: the view renders a placeholder.
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("root %s not found", req.RootID))
			return resp, nil
		}
		return nil, fmt.Errorf("loading dashboard root: %w", err)
	}

	tree, err := s.cache.Tree(req.RootID, func() (*engine.Node, error) {
		records, err := s.resources.ListSubtree(ctx, root.Path)
		if err != nil {
			return nil, fmt.Errorf("loading subtree: %w", err)
		}
		return s.builder.Build(records, req.RootID), nil
	})
	if err != nil {
		return nil, err
	}

	resp.Root = tree
	if tree != nil {
		tree.Walk(func(*engine.Node) { resp.NodeCount++ })
	}

	if req.Aggregation != nil && tree != nil {
		_, agg, err := s.engineFor(ctx)
		if err != nil {
			return nil, err
		}
		data := agg.AggregateFrom(tree, *req.Aggregation, s.cache.Lookup(req.RootID))
		resp.Aggregation = &data
	}
	return resp, nil
}

// Slots exposes the profile-configured resolver so presentation code
// formats values consistently with aggregation.
func (s *dashboardService) Slots(ctx context.Context) (*engine.SlotResolver, error) {
	slots, _, err := s.engineFor(ctx)
	return slots, err
}

// engineFor returns the resolver and aggregator, building them from the
// owner profile on first use. Profile edits take effect on the next run;
// a CLI process never outlives one.
func (s *dashboardService) engineFor(ctx context.Context) (*engine.SlotResolver, *engine.Aggregator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slots == nil {
		profile, err := s.profiles.Get(ctx)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, nil, fmt.Errorf("loading profile: %w", err)
			}
			profile = defaultProfile()
		}
		s.slots = engine.NewSlotResolver(profile.Locale, profile.Currency, nil)
		s.agg = engine.NewAggregator(s.slots, s.logger)
	}
	return s.slots, s.agg, nil
}
