package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tfgate/guarantees/internal/core"
)

func (p *Postgres) CreateReview(ctx context.Context, r *core.Review) error {
	const q = `
		INSERT INTO reviews (id, guarantee_id, review_notes, reviewer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return p.db.QueryRow(ctx, q, r.ID, r.GuaranteeID, r.ReviewNotes, r.ReviewerID).
		Scan(&r.CreatedAt, &r.UpdatedAt)
}

func (p *Postgres) ReviewByGuarantee(ctx context.Context, guaranteeID uuid.UUID) (*core.Review, error) {
	const q = `
		SELECT id, guarantee_id, review_notes, reviewer_id, created_at, updated_at
		FROM reviews
		WHERE guarantee_id = $1`

	var r core.Review
	err := p.db.QueryRow(ctx, q, guaranteeID).Scan(
		&r.ID, &r.GuaranteeID, &r.ReviewNotes, &r.ReviewerID, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *Postgres) UpdateReview(ctx context.Context, r *core.Review) error {
	const q = `
		UPDATE reviews
		SET review_notes = $2, reviewer_id = $3, updated_at = now()
		WHERE id = $1`

	tag, err := p.db.Exec(ctx, q, r.ID, r.ReviewNotes, r.ReviewerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
