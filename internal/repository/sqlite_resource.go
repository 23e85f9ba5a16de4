package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avandeursen/mosaic/internal/db"
	"github.com/avandeursen/mosaic/internal/domain"
)

// resourceColumns is the canonical SELECT column list for resources.
const resourceColumns = `id, parent_id, path, type, title, description, status,
		metadata, scheduled_at, owner_id, creator_id, is_shared, is_deleted,
		created_at, updated_at`

// SQLiteResourceRepo implements ResourceRepo using a SQLite database.
// It accepts any db.DBTX so the same repo code runs inside transactions.
type SQLiteResourceRepo struct {
	db db.DBTX
}

// NewSQLiteResourceRepo creates a new SQLiteResourceRepo.
func NewSQLiteResourceRepo(conn db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: conn}
}

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	meta, err := marshalMetadata(res.Metadata)
	if err != nil {
		return err
	}
	query := `INSERT INTO resources (id, parent_id, path, type, title, description, status,
		metadata, scheduled_at, owner_id, creator_id, is_shared, is_deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		res.ID,
		res.ParentID, // *string: nil becomes SQL NULL
		res.Path,
		string(res.Type),
		res.Title,
		res.Description,
		string(res.Status),
		meta,
		nullableTimeToString(res.ScheduledAt, time.RFC3339),
		res.OwnerID,
		res.CreatorID,
		boolToInt(res.IsShared),
		boolToInt(res.IsDeleted),
		res.CreatedAt.Format(time.RFC3339),
		res.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = ? AND is_deleted = 0`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanResource(row)
}

func (r *SQLiteResourceRepo) List(ctx context.Context, ownerID string) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE owner_id = ? AND is_deleted = 0 ORDER BY path`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()
	return r.scanResources(rows)
}

func (r *SQLiteResourceRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE parent_id = ? AND is_deleted = 0 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child resources: %w", err)
	}
	defer rows.Close()
	return r.scanResources(rows)
}

func (r *SQLiteResourceRepo) ListSubtree(ctx context.Context, pathPrefix string) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources
		WHERE (path = ? OR path LIKE ? || '.%') AND is_deleted = 0 ORDER BY path`
	rows, err := r.db.QueryContext(ctx, query, pathPrefix, pathPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing subtree: %w", err)
	}
	defer rows.Close()
	return r.scanResources(rows)
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	meta, err := marshalMetadata(res.Metadata)
	if err != nil {
		return err
	}
	query := `UPDATE resources SET parent_id = ?, path = ?, type = ?, title = ?,
		description = ?, status = ?, metadata = ?, scheduled_at = ?, owner_id = ?,
		creator_id = ?, is_shared = ?, is_deleted = ?, updated_at = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		res.ParentID,
		res.Path,
		string(res.Type),
		res.Title,
		res.Description,
		string(res.Status),
		meta,
		nullableTimeToString(res.ScheduledAt, time.RFC3339),
		res.OwnerID,
		res.CreatorID,
		boolToInt(res.IsShared),
		boolToInt(res.IsDeleted),
		res.UpdatedAt.Format(time.RFC3339),
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("resource %s: %w", res.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteResourceRepo) MarkDeleted(ctx context.Context, id string) error {
	query := `UPDATE resources SET is_deleted = 1, updated_at = ? WHERE id = ? AND is_deleted = 0`
	result, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("marking resource deleted: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("resource %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanResource scans a single resource from a *sql.Row.
func (r *SQLiteResourceRepo) scanResource(row *sql.Row) (*domain.Resource, error) {
	var res domain.Resource
	var typeStr, statusStr, metaStr, createdAtStr, updatedAtStr string
	var parentID, scheduledAtStr sql.NullString
	var isSharedInt, isDeletedInt int

	err := row.Scan(
		&res.ID, &parentID, &res.Path, &typeStr, &res.Title, &res.Description,
		&statusStr, &metaStr, &scheduledAtStr, &res.OwnerID, &res.CreatorID,
		&isSharedInt, &isDeletedInt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("resource: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning resource: %w", err)
	}
	return r.populateResource(&res, typeStr, statusStr, metaStr, createdAtStr, updatedAtStr,
		parentID, scheduledAtStr, isSharedInt, isDeletedInt)
}

// scanResources scans multiple resources from *sql.Rows.
func (r *SQLiteResourceRepo) scanResources(rows *sql.Rows) ([]*domain.Resource, error) {
	var resources []*domain.Resource
	for rows.Next() {
		var res domain.Resource
		var typeStr, statusStr, metaStr, createdAtStr, updatedAtStr string
		var parentID, scheduledAtStr sql.NullString
		var isSharedInt, isDeletedInt int

		err := rows.Scan(
			&res.ID, &parentID, &res.Path, &typeStr, &res.Title, &res.Description,
			&statusStr, &metaStr, &scheduledAtStr, &res.OwnerID, &res.CreatorID,
			&isSharedInt, &isDeletedInt, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning resource row: %w", err)
		}
		populated, err := r.populateResource(&res, typeStr, statusStr, metaStr, createdAtStr,
			updatedAtStr, parentID, scheduledAtStr, isSharedInt, isDeletedInt)
		if err != nil {
			return nil, err
		}
		resources = append(resources, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return resources, nil
}

// populateResource fills in parsed fields on a Resource after scanning raw strings.
func (r *SQLiteResourceRepo) populateResource(
	res *domain.Resource,
	typeStr, statusStr, metaStr, createdAtStr, updatedAtStr string,
	parentID, scheduledAtStr sql.NullString,
	isSharedInt, isDeletedInt int,
) (*domain.Resource, error) {
	res.Type = domain.ResourceType(typeStr)
	res.Status = domain.ResourceStatus(statusStr)
	res.IsShared = intToBool(isSharedInt)
	res.IsDeleted = intToBool(isDeletedInt)

	if parentID.Valid {
		res.ParentID = &parentID.String
	}
	res.ScheduledAt = parseNullableTime(scheduledAtStr, time.RFC3339)

	meta, err := unmarshalMetadata(metaStr)
	if err != nil {
		return nil, err
	}
	res.Metadata = meta

	var parseErr error
	res.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	res.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return res, nil
}
