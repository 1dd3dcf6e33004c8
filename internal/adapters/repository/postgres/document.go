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

// uniqueViolation is the postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type sqlDocumentRepository struct {
	db SQLQuerier
}

// NewSqlDocumentRepository creates sqlDocumentRepository that implements port.DocumentRepository
func NewSqlDocumentRepository(db SQLQuerier) port.DocumentRepository {
	return &sqlDocumentRepository{
		db: db,
	}
}

const documentColumns = `id, title, description, document_type, file_name, file_size, mime_type,
                         content_hash, raw_file_path, hash_file_path, status,
                         blockchain_hash, transaction_id, block_number, network_id, contract_address,
                         verified_at, shareable_link, user_id, created_at, updated_at`

// Create inserts a document record. A content-hash unique violation becomes
// ErrDuplicateContent so a race between identical uploads leaves one record.
func (s *sqlDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query := `INSERT INTO documents (id, title, description, document_type, file_name, file_size, mime_type,
                                     content_hash, raw_file_path, hash_file_path, status, shareable_link, user_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.Type,
		doc.FileName,
		doc.FileSize,
		doc.MimeType,
		doc.ContentHash,
		doc.RawFilePath,
		doc.HashFilePath,
		doc.Status,
		doc.ShareableLink,
		doc.UserID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateContent, pqErr.Constraint)
		}
		return fmt.Errorf("error inserting document: %w", err)
	}
	return nil
}

// FindByID finds by id
func (s *sqlDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return s.findOne(ctx, query, id)
}

// FindByShareableLink resolves a share link to its document.
func (s *sqlDocumentRepository) FindByShareableLink(ctx context.Context, link string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE shareable_link = $1`
	return s.findOne(ctx, query, link)
}

func (s *sqlDocumentRepository) findOne(ctx context.Context, query string, arg any) (*domain.Document, error) {
	var d dbDocument
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&d.ID, &d.Title, &d.Description, &d.Type, &d.FileName, &d.FileSize, &d.MimeType,
		&d.ContentHash, &d.RawFilePath, &d.HashFilePath, &d.Status,
		&d.BlockchainHash, &d.TransactionID, &d.BlockNumber, &d.NetworkID, &d.ContractAddress,
		&d.VerifiedAt, &d.ShareableLink, &d.UserID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document", domain.ErrNotFound)
		}
		return nil, err
	}
	return d.ToDomain(), nil
}

// ExistsByHash reports whether content with this hash is already registered.
func (s *sqlDocumentRepository) ExistsByHash(ctx context.Context, contentHash string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE content_hash = $1)`, contentHash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking content hash: %w", err)
	}
	return exists, nil
}

// UpdateStatus sets the verification status and, when given, the anchor data
// and verification time.
func (s *sqlDocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, anchor *domain.Anchor, verifiedAt *time.Time) error {
	var a domain.Anchor
	if anchor != nil {
		a = *anchor
	}

	query := `UPDATE documents
              SET status = $1,
                  blockchain_hash = COALESCE(NULLIF($2, ''), blockchain_hash),
                  transaction_id = COALESCE(NULLIF($3, ''), transaction_id),
                  block_number = COALESCE(NULLIF($4, ''), block_number),
                  network_id = COALESCE(NULLIF($5, ''), network_id),
                  contract_address = COALESCE(NULLIF($6, ''), contract_address),
                  verified_at = COALESCE($7, verified_at),
                  updated_at = now()
              WHERE id = $8`

	result, err := s.db.ExecContext(ctx, query,
		status, a.BlockchainHash, a.TransactionID, a.BlockNumber, a.NetworkID, a.ContractAddress, verifiedAt, id)
	if err != nil {
		return fmt.Errorf("error updating document status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
	}
	return nil
}

// List returns the user's documents matching the filter, newest first.
func (s *sqlDocumentRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DocumentFilter) ([]domain.Document, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("document_type = $%d", len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		documentColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d dbDocument
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.Type, &d.FileName, &d.FileSize, &d.MimeType,
			&d.ContentHash, &d.RawFilePath, &d.HashFilePath, &d.Status,
			&d.BlockchainHash, &d.TransactionID, &d.BlockNumber, &d.NetworkID, &d.ContractAddress,
			&d.VerifiedAt, &d.ShareableLink, &d.UserID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, *d.ToDomain())
	}
	return docs, rows.Err()
}

// Stats returns the user's counts by verification status.
func (s *sqlDocumentRepository) Stats(ctx context.Context, userID uuid.UUID) (*domain.DocumentStats, error) {
	query := `SELECT
                COUNT(*),
                COUNT(*) FILTER (WHERE status = 'PENDING'),
                COUNT(*) FILTER (WHERE status = 'PROCESSING'),
                COUNT(*) FILTER (WHERE status = 'VERIFIED'),
                COUNT(*) FILTER (WHERE status = 'FAILED')
              FROM documents
              WHERE user_id = $1`

	var st domain.DocumentStats
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&st.Total, &st.Pending, &st.Processing, &st.Verified, &st.Failed)
	if err != nil {
		return nil, fmt.Errorf("error counting documents: %w", err)
	}
	return &st, nil
}

type dbDocument struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Type            string
	FileName        string
	FileSize        int64
	MimeType        string
	ContentHash     string
	RawFilePath     string
	HashFilePath    string
	Status          string
	BlockchainHash  string
	TransactionID   string
	BlockNumber     string
	NetworkID       string
	ContractAddress string
	VerifiedAt      *time.Time
	ShareableLink   string
	UserID          uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToDomain converts to domain.Document
func (d *dbDocument) ToDomain() *domain.Document {
	return &domain.Document{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Type:         domain.DocumentType(d.Type),
		FileName:     d.FileName,
		FileSize:     d.FileSize,
		MimeType:     d.MimeType,
		ContentHash:  d.ContentHash,
		RawFilePath:  d.RawFilePath,
		HashFilePath: d.HashFilePath,
		Status:       domain.VerificationStatus(d.Status),
		Anchor: domain.Anchor{
			BlockchainHash:  d.BlockchainHash,
			TransactionID:   d.TransactionID,
			BlockNumber:     d.BlockNumber,
			NetworkID:       d.NetworkID,
			ContractAddress: d.ContractAddress,
		},
		VerifiedAt:    d.VerifiedAt,
		ShareableLink: d.ShareableLink,
		UserID:        d.UserID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
