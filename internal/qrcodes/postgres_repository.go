package qrcodes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/qrkit/pkg/pg"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

// PostgresRepository stores records in the qr_codes table. Rows created in
// the same instant list in insertion order through the seq column.
type PostgresRepository struct {
	db pg.DB
}

// NewPostgresRepository wraps db. The schema comes from internal/db/migrations.
func NewPostgresRepository(db pg.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recordColumns = `id, owner_id, type, title, fields, encoded, settings, image_key, image_url, created_at`

const insertRecordSQL = `INSERT INTO qr_codes (` + recordColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const getRecordSQL = `SELECT ` + recordColumns + ` FROM qr_codes WHERE id = $1`

const listRecordsSQL = `SELECT ` + recordColumns + ` FROM qr_codes
WHERE owner_id = $1
  AND ($2 = '' OR type = $2)
  AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR encoded ILIKE '%' || $3 || '%')
ORDER BY created_at DESC, seq DESC
LIMIT $4 OFFSET $5`

const deleteRecordSQL = `DELETE FROM qr_codes WHERE id = $1 AND owner_id = $2`

func (r *PostgresRepository) Create(ctx context.Context, rec *Record) error {
	fields := rec.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	_, err := r.db.Exec(ctx, insertRecordSQL,
		rec.ID,
		rec.OwnerID,
		string(rec.Type),
		rec.Title,
		fields,
		rec.Encoded,
		rec.Settings,
		rec.ImageKey,
		rec.ImageURL,
		rec.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return errors.Join(ErrRepository, err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	rec, err := scanRecord(r.db.QueryRow(ctx, getRecordSQL, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrRepository, err)
	}
	return rec, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string, filter ListFilter) ([]*Record, error) {
	filter = filter.normalize()
	rows, err := r.db.Query(ctx, listRecordsSQL,
		ownerID,
		string(filter.Type),
		escapeLike(strings.TrimSpace(filter.Search)),
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		return nil, errors.Join(ErrRepository, err)
	}
	defer rows.Close()

	out := []*Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Join(ErrRepository, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrRepository, err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	tag, err := r.db.Exec(ctx, deleteRecordSQL, id, ownerID)
	if err != nil {
		return errors.Join(ErrRepository, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var (
		rec Record
		typ string
	)
	err := row.Scan(
		&rec.ID,
		&rec.OwnerID,
		&typ,
		&rec.Title,
		&rec.Fields,
		&rec.Encoded,
		&rec.Settings,
		&rec.ImageKey,
		&rec.ImageURL,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Type = qrcontent.ContentType(typ)
	return &rec, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
