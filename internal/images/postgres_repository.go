package images

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/qrkit/pkg/pg"
)

// PostgresRepository stores uploads in the image_uploads table.
type PostgresRepository struct {
	db pg.DB
}

// NewPostgresRepository wraps db. The schema comes from internal/db/migrations.
func NewPostgresRepository(db pg.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uploadColumns = `id, owner_id, name, mime_type, size, description, image_key, image_url,
page_url, view_only, background, qr_code_id, qr_image_url, created_at`

const insertUploadSQL = `INSERT INTO image_uploads (` + uploadColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

const getUploadSQL = `SELECT ` + uploadColumns + ` FROM image_uploads WHERE id = $1`

const listUploadsSQL = `SELECT ` + uploadColumns + ` FROM image_uploads
WHERE owner_id = $1
ORDER BY created_at DESC, seq DESC
LIMIT $2 OFFSET $3`

const deleteUploadSQL = `DELETE FROM image_uploads WHERE id = $1 AND owner_id = $2`

func (r *PostgresRepository) Create(ctx context.Context, u *Upload) error {
	_, err := r.db.Exec(ctx, insertUploadSQL,
		u.ID,
		u.OwnerID,
		u.Name,
		u.MIMEType,
		u.Size,
		u.Description,
		u.ImageKey,
		u.ImageURL,
		u.PageURL,
		u.ViewOnly,
		u.Background,
		u.QRCodeID,
		u.QRImageURL,
		u.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return errors.Join(ErrRepository, err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Upload, error) {
	u, err := scanUpload(r.db.QueryRow(ctx, getUploadSQL, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrRepository, err)
	}
	return u, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string, page Page) ([]*Upload, error) {
	page = page.normalize()
	rows, err := r.db.Query(ctx, listUploadsSQL, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, errors.Join(ErrRepository, err)
	}
	defer rows.Close()

	out := []*Upload{}
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, errors.Join(ErrRepository, err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrRepository, err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	tag, err := r.db.Exec(ctx, deleteUploadSQL, id, ownerID)
	if err != nil {
		return errors.Join(ErrRepository, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUpload(row pgx.Row) (*Upload, error) {
	var u Upload
	err := row.Scan(
		&u.ID,
		&u.OwnerID,
		&u.Name,
		&u.MIMEType,
		&u.Size,
		&u.Description,
		&u.ImageKey,
		&u.ImageURL,
		&u.PageURL,
		&u.ViewOnly,
		&u.Background,
		&u.QRCodeID,
		&u.QRImageURL,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
