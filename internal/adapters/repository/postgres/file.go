package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlFileRepository struct {
	db SQLQuerier
}

// NewSqlFileRepository creates sqlFileRepository that implements port.FileRepository
func NewSqlFileRepository(db SQLQuerier) port.FileRepository {
	return &sqlFileRepository{
		db: db,
	}
}

const fileColumns = `id, original_name, mime_type, stored_path, size_bytes, description,
                     tags, keywords, user_id, owner_id, deleted_at, created_at, updated_at`

// Create creates a new file record
func (s *sqlFileRepository) Create(ctx context.Context, f *domain.File) error {
	query := `INSERT INTO files (id, original_name, mime_type, stored_path, size_bytes, description, tags, keywords, user_id, owner_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		f.ID,
		f.OriginalName,
		f.MimeType,
		f.StoredPath,
		f.SizeBytes,
		f.Description,
		pq.Array(f.Tags),
		pq.Array(f.Keywords),
		f.Owners.Primary,
		f.Owners.Delegate,
	)
	if err != nil {
		return fmt.Errorf("error inserting file: %w", err)
	}
	return nil
}

// FindByID finds by id, including soft-deleted rows. Callers decide between
// not-found and gone.
func (s *sqlFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	f, err := scanFile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return f, nil
}

// Search returns live files owned by ownerID matching the query, newest
// first, plus the total match count.
func (s *sqlFileRepository) Search(ctx context.Context, ownerID uuid.UUID, q domain.FileSearchQuery) ([]domain.File, int, error) {
	where := []string{"(user_id = $1 OR owner_id = $1)", "deleted_at IS NULL"}
	args := []any{ownerID}

	if q.Query != "" {
		args = append(args, "%"+q.Query+"%", strings.ToLower(q.Query))
		where = append(where, fmt.Sprintf("(original_name ILIKE $%d OR $%d = ANY(keywords))", len(args)-1, len(args)))
	}
	if cond := categoryCondition(q.Category); cond != "" {
		where = append(where, cond)
	}
	if len(q.Tags) > 0 {
		args = append(args, pq.Array(q.Tags))
		where = append(where, fmt.Sprintf("tags && $%d", len(args)))
	}
	if q.MinSize > 0 {
		args = append(args, q.MinSize)
		where = append(where, fmt.Sprintf("size_bytes >= $%d", len(args)))
	}
	if q.MaxSize > 0 {
		args = append(args, q.MaxSize)
		where = append(where, fmt.Sprintf("size_bytes <= $%d", len(args)))
	}
	if q.From != nil {
		args = append(args, *q.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if q.To != nil {
		args = append(args, *q.To)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total
              FROM files
              WHERE %s
              ORDER BY created_at DESC
              LIMIT $%d OFFSET $%d`, fileColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching files: %w", err)
	}
	defer rows.Close()

	var files []domain.File
	var total int
	for rows.Next() {
		var f dbFile
		if err := rows.Scan(
			&f.ID, &f.OriginalName, &f.MimeType, &f.StoredPath, &f.SizeBytes, &f.Description,
			pq.Array(&f.Tags), pq.Array(&f.Keywords), &f.UserID, &f.OwnerID, &f.DeletedAt, &f.CreatedAt, &f.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning file row: %w", err)
		}
		files = append(files, *f.ToDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

// categoryCondition maps a file category onto a MIME type predicate. It must
// stay in sync with domain.CategoryFromMime.
func categoryCondition(c domain.FileCategory) string {
	switch c {
	case domain.CategoryImage:
		return "mime_type LIKE 'image/%'"
	case domain.CategoryPDF:
		return "mime_type = 'application/pdf'"
	case domain.CategoryDocument:
		return "(mime_type LIKE '%word%' OR mime_type LIKE '%document%')"
	case domain.CategorySpreadsheet:
		return "(mime_type LIKE '%sheet%' OR mime_type LIKE '%excel%')"
	case domain.CategoryPresentation:
		return "(mime_type LIKE '%presentation%' OR mime_type LIKE '%powerpoint%')"
	case domain.CategoryText:
		return "mime_type LIKE 'text/%'"
	default:
		return ""
	}
}

// ListTrash returns the owner's soft-deleted files, most recently deleted first.
func (s *sqlFileRepository) ListTrash(ctx context.Context, ownerID uuid.UUID) ([]domain.File, error) {
	query := `SELECT ` + fileColumns + `
              FROM files
              WHERE (user_id = $1 OR owner_id = $1) AND deleted_at IS NOT NULL
              ORDER BY deleted_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing trash: %w", err)
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var f dbFile
		if err := rows.Scan(
			&f.ID, &f.OriginalName, &f.MimeType, &f.StoredPath, &f.SizeBytes, &f.Description,
			pq.Array(&f.Tags), pq.Array(&f.Keywords), &f.UserID, &f.OwnerID, &f.DeletedAt, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning file row: %w", err)
		}
		files = append(files, *f.ToDomain())
	}
	return files, rows.Err()
}

// SetDeletedAt sets or clears the deletion mark.
func (s *sqlFileRepository) SetDeletedAt(ctx context.Context, id uuid.UUID, deletedAt *time.Time) error {
	query := `UPDATE files SET deleted_at = $1, updated_at = now() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, deletedAt, id)
	if err != nil {
		return fmt.Errorf("error updating file: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: file %s", domain.ErrNotFound, id)
	}
	return nil
}

func scanFile(row *sql.Row) (*domain.File, error) {
	var f dbFile
	err := row.Scan(
		&f.ID, &f.OriginalName, &f.MimeType, &f.StoredPath, &f.SizeBytes, &f.Description,
		pq.Array(&f.Tags), pq.Array(&f.Keywords), &f.UserID, &f.OwnerID, &f.DeletedAt, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f.ToDomain(), nil
}

type dbFile struct {
	ID           uuid.UUID
	OriginalName string
	MimeType     string
	StoredPath   string
	SizeBytes    int64
	Description  string
	Tags         []string
	Keywords     []string
	UserID       uuid.UUID
	OwnerID      *uuid.UUID
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ToDomain converts to domain.File
func (f *dbFile) ToDomain() *domain.File {
	return &domain.File{
		ID:           f.ID,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		StoredPath:   f.StoredPath,
		SizeBytes:    f.SizeBytes,
		Description:  f.Description,
		Tags:         f.Tags,
		Keywords:     f.Keywords,
		Owners:       domain.Owners{Primary: f.UserID, Delegate: f.OwnerID},
		DeletedAt:    f.DeletedAt,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
