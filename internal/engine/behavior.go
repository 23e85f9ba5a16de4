package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avandeursen/mosaic/internal/db"
	"github.com/avandeursen/mosaic/internal/domain"
	"github.com/avandeursen/mosaic/internal/repository"
)

// ErrMutationInFlight rejects a second optimistic mutation for a record
// whose previous mutation has not resolved yet.
var ErrMutationInFlight = errors.New("mutation already in flight for record")

// Dispatcher translates declarative behavior descriptors into mutations
// against the persistence collaborator. Status toggles are optimistic: the
// cached view is updated before the write resolves and restored to its
// exact prior value on failure. Every mutation, successful or rolled back,
// invalidates the tree cache so views converge on the stored state.
//
// The dispatcher is an explicitly constructed controller: all collaborators
// are injected, nothing lives in package state.
type Dispatcher struct {
	resources repository.ResourceRepo
	uow       db.UnitOfWork
	cache     *Cache
	clock     func() time.Time
	logger    *slog.Logger

	mu       sync.Mutex
	inflight map[string]bool
}

// NewDispatcher creates a Dispatcher. Clock and logger may be nil.
func NewDispatcher(resources repository.ResourceRepo, uow db.UnitOfWork, cache *Cache, clock func() time.Time, logger *slog.Logger) *Dispatcher {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cache == nil {
		cache = NewCache()
	}
	return &Dispatcher{
		resources: resources,
		uow:       uow,
		cache:     cache,
		clock:     clock,
		logger:    logger,
		inflight:  make(map[string]bool),
	}
}

// Dispatch executes one behavior descriptor against a node. Unknown actions
// are logged and ignored: they never fail and never mutate anything.
func (d *Dispatcher) Dispatch(ctx context.Context, n *Node, b BehaviorDescriptor) error {
	if n == nil {
		return fmt.Errorf("dispatching %s: nil node", b.Action)
	}

	switch b.Action {
	case ActionUpdateField:
		return d.updateField(ctx, n, b)
	case ActionToggleStatus:
		return d.toggleStatus(ctx, n)
	case ActionMoveNode, ActionMoveToColumn:
		return d.moveNode(ctx, n, b)
	case ActionLogEvent:
		return d.logEvent(ctx, n, b)
	default:
		d.logger.Warn("ignoring unknown behavior", "action", b.Action, "node_id", n.ID)
		return nil
	}
}

// updateField merges the payload into the record's metadata at the target
// key. The authoritative persisted record is re-read first: the rendered
// view-model copy may be stale or partial, and merging into it would
// clobber concurrently-changed sibling fields.
func (d *Dispatcher) updateField(ctx context.Context, n *Node, b BehaviorDescriptor) error {
	rec, err := d.resources.GetByID(ctx, n.ID)
	if err != nil {
		return fmt.Errorf("reading record for update_field: %w", err)
	}

	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	if b.Target == "" {
		for k, v := range b.Payload {
			rec.Metadata[k] = v
		}
	} else {
		rec.Metadata[b.Target] = mergeValue(rec.Metadata[b.Target], b.Payload)
	}
	rec.UpdatedAt = d.clock().UTC()

	if err := d.resources.Update(ctx, rec); err != nil {
		return fmt.Errorf("persisting update_field: %w", err)
	}
	d.cache.InvalidateAll()
	return nil
}

// mergeValue deep-merges payload into an existing metadata value when both
// sides are maps; otherwise the payload replaces the old value.
func mergeValue(existing any, payload map[string]any) any {
	existingMap, ok := existing.(map[string]any)
	if !ok {
		out := make(map[string]any, len(payload))
		for k, v := range payload {
			out[k] = v
		}
		return out
	}
	merged := make(map[string]any, len(existingMap)+len(payload))
	for k, v := range existingMap {
		merged[k] = v
	}
	for k, v := range payload {
		if inner, ok := v.(map[string]any); ok {
			merged[k] = mergeValue(merged[k], inner)
			continue
		}
		merged[k] = v
	}
	return merged
}

// toggleStatus advances the status cycle optimistically. The new value is
// applied to the cached node before the write; on failure the exact prior
// value is restored (never recomputed, which would double-cycle).
func (d *Dispatcher) toggleStatus(ctx context.Context, n *Node) error {
	d.mu.Lock()
	if d.inflight[n.ID] {
		d.mu.Unlock()
		return fmt.Errorf("toggling status of %s: %w", n.ID, ErrMutationInFlight)
	}
	d.inflight[n.ID] = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.inflight, n.ID)
		d.mu.Unlock()
		// Dependent views converge on the store regardless of outcome.
		d.cache.InvalidateAll()
	}()

	prior := n.Metadata[MetaStatus]
	next := n.Status().Next()
	n.Metadata[MetaStatus] = string(next)

	if err := d.persistStatus(ctx, n.ID, next); err != nil {
		n.Metadata[MetaStatus] = prior
		return fmt.Errorf("toggling status of %s: %w", n.ID, err)
	}
	return nil
}

func (d *Dispatcher) persistStatus(ctx context.Context, id string, status domain.ResourceStatus) error {
	rec, err := d.resources.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rec.Status = status
	rec.UpdatedAt = d.clock().UTC()
	return d.resources.Update(ctx, rec)
}

// moveNode reparents the record under payload.parent_id and eagerly repairs
// the materialized path of the whole moved subtree in one transaction, so
// path-prefix queries stay consistent with the parent relation.
func (d *Dispatcher) moveNode(ctx context.Context, n *Node, b BehaviorDescriptor) error {
	newParentID, _ := b.Payload["parent_id"].(string)
	if newParentID == n.ID {
		return fmt.Errorf("moving %s: cannot move under itself", n.ID)
	}

	err := d.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteResourceRepo(tx)

		rec, err := repo.GetByID(ctx, n.ID)
		if err != nil {
			return fmt.Errorf("reading record: %w", err)
		}

		oldPath := rec.Path
		var newPath string
		if newParentID == "" {
			rec.ParentID = nil
			newPath = domain.ChildPath("", rec.ID)
		} else {
			parent, err := repo.GetByID(ctx, newParentID)
			if err != nil {
				return fmt.Errorf("reading new parent: %w", err)
			}
			if parent.Path == oldPath || strings.HasPrefix(parent.Path, oldPath+domain.PathSeparator) {
				return fmt.Errorf("cannot move %s under its own descendant %s", rec.ID, parent.ID)
			}
			rec.ParentID = &parent.ID
			newPath = domain.ChildPath(parent.Path, rec.ID)
		}

		subtree, err := repo.ListSubtree(ctx, oldPath)
		if err != nil {
			return fmt.Errorf("listing subtree: %w", err)
		}

		now := d.clock().UTC()
		rec.Path = newPath
		rec.UpdatedAt = now
		if err := repo.Update(ctx, rec); err != nil {
			return fmt.Errorf("updating moved record: %w", err)
		}

		for _, desc := range subtree {
			if desc.ID == rec.ID {
				continue
			}
			desc.Path = newPath + strings.TrimPrefix(desc.Path, oldPath)
			desc.UpdatedAt = now
			if err := repo.Update(ctx, desc); err != nil {
				return fmt.Errorf("repairing descendant path: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("moving %s: %w", n.ID, err)
	}

	d.cache.InvalidateAll()
	return nil
}

// logEvent creates a new child record stamped with the dispatcher clock and
// an is_event marker, carrying any extra payload fields in its metadata.
func (d *Dispatcher) logEvent(ctx context.Context, n *Node, b BehaviorDescriptor) error {
	parent, err := d.resources.GetByID(ctx, n.ID)
	if err != nil {
		return fmt.Errorf("reading parent for log_event: %w", err)
	}

	now := d.clock().UTC()
	title, _ := b.Payload["title"].(string)
	if title == "" {
		title = "Event"
	}

	meta := make(map[string]any, len(b.Payload)+2)
	for k, v := range b.Payload {
		if k == "title" {
			continue
		}
		meta[k] = v
	}
	meta[MetaIsEvent] = true
	meta["logged_at"] = now.Format(timeLayout)

	id := uuid.New().String()
	event := &domain.Resource{
		ID:        id,
		ParentID:  &parent.ID,
		Path:      domain.ChildPath(parent.Path, id),
		Type:      domain.TypeEvent,
		Title:     title,
		Status:    domain.StatusActive,
		Metadata:  meta,
		OwnerID:   parent.OwnerID,
		CreatorID: parent.CreatorID,
		IsShared:  parent.IsShared,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.resources.Create(ctx, event); err != nil {
		return fmt.Errorf("persisting event: %w", err)
	}
	d.cache.InvalidateAll()
	return nil
}
