package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tfgate/guarantees/internal/core"
)

// fileColumns deliberately leaves out file_contents; list queries stay
// cheap and only FileByID pulls the payload.
const fileColumns = `id, filename, file_type, status, COALESCE(processing_notes, ''), owner_id, created_at, updated_at`

func (p *Postgres) CreateFile(ctx context.Context, f *core.File) error {
	const q = `
		INSERT INTO files (id, filename, file_type, file_contents, status, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return p.db.QueryRow(ctx, q,
		f.ID, f.Filename, f.FileType, f.FileContents, string(f.Status), f.OwnerID,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
}

func (p *Postgres) FileByID(ctx context.Context, id uuid.UUID) (*core.File, error) {
	const q = `
		SELECT ` + fileColumns + `, file_contents
		FROM files
		WHERE id = $1`

	f, err := scanFile(p.db.QueryRow(ctx, q, id), true)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Postgres) ListFiles(ctx context.Context) ([]core.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files ORDER BY created_at DESC`
	rows, err := p.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectFiles(rows)
}

func (p *Postgres) ListFilesByOwner(ctx context.Context, ownerID uuid.UUID) ([]core.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := p.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return collectFiles(rows)
}

func (p *Postgres) UpdateFileStatus(ctx context.Context, id uuid.UUID, status core.FileStatus, notes string) error {
	const q = `
		UPDATE files
		SET status = $2, processing_notes = NULLIF($3, ''), updated_at = now()
		WHERE id = $1`

	tag, err := p.db.Exec(ctx, q, id, string(status), notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func scanFile(row pgx.Row, withContents bool) (*core.File, error) {
	var f core.File
	var status string
	dest := []any{
		&f.ID, &f.Filename, &f.FileType, &status, &f.ProcessingNotes,
		&f.OwnerID, &f.CreatedAt, &f.UpdatedAt,
	}
	if withContents {
		dest = append(dest, &f.FileContents)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	f.Status = core.FileStatus(status)
	return &f, nil
}

func collectFiles(rows pgx.Rows) ([]core.File, error) {
	defer rows.Close()
	var out []core.File
	for rows.Next() {
		f, err := scanFile(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}
