package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tfgate/guarantees/internal/core"
)

func (p *Postgres) ActorByID(ctx context.Context, id uuid.UUID) (*core.Actor, error) {
	const q = `SELECT id, name, email, role, created_at FROM actors WHERE id = $1`

	var a core.Actor
	var role string
	err := p.db.QueryRow(ctx, q, id).Scan(&a.ID, &a.Name, &a.Email, &role, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Role = core.Role(role)
	return &a, nil
}

func (p *Postgres) ActorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM actors WHERE id = $1)`
	var exists bool
	if err := p.db.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
