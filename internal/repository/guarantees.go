package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tfgate/guarantees/internal/core"
)

const guaranteeColumns = `id, corporate_reference_number, guarantee_type, nominal_amount,
	nominal_amount_currency, expiry_date, applicant_name, applicant_address,
	beneficiary_name, beneficiary_address, status, owner_id, created_at, updated_at`

func (p *Postgres) CreateGuarantee(ctx context.Context, g *core.Guarantee) error {
	const q = `
		INSERT INTO guarantees (
			id, corporate_reference_number, guarantee_type, nominal_amount,
			nominal_amount_currency, expiry_date, applicant_name, applicant_address,
			beneficiary_name, beneficiary_address, status, owner_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := p.db.QueryRow(ctx, q,
		g.ID, g.CorporateReferenceNumber, string(g.GuaranteeType), g.NominalAmount,
		g.NominalAmountCurrency, g.ExpiryDate, g.ApplicantName, g.ApplicantAddress,
		g.BeneficiaryName, g.BeneficiaryAddress, string(g.Status), g.OwnerID,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return mapReferenceConflict(err)
	}
	return nil
}

func (p *Postgres) GuaranteeByID(ctx context.Context, id uuid.UUID) (*core.Guarantee, error) {
	q := fmt.Sprintf(`SELECT %s FROM guarantees WHERE id = $1`, guaranteeColumns)
	g, err := scanGuarantee(p.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Postgres) ListGuarantees(ctx context.Context) ([]core.Guarantee, error) {
	q := fmt.Sprintf(`SELECT %s FROM guarantees ORDER BY created_at DESC`, guaranteeColumns)
	rows, err := p.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectGuarantees(rows)
}

func (p *Postgres) ListGuaranteesByOwner(ctx context.Context, ownerID uuid.UUID) ([]core.Guarantee, error) {
	q := fmt.Sprintf(`SELECT %s FROM guarantees WHERE owner_id = $1 ORDER BY created_at DESC`, guaranteeColumns)
	rows, err := p.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return collectGuarantees(rows)
}

func (p *Postgres) ListGuaranteesByStatus(ctx context.Context, statuses ...core.GuaranteeStatus) ([]core.Guarantee, error) {
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}
	q := fmt.Sprintf(`SELECT %s FROM guarantees WHERE status = ANY($1) ORDER BY created_at DESC`, guaranteeColumns)
	rows, err := p.db.Query(ctx, q, vals)
	if err != nil {
		return nil, err
	}
	return collectGuarantees(rows)
}

func (p *Postgres) UpdateGuaranteeFields(ctx context.Context, g *core.Guarantee) error {
	const q = `
		UPDATE guarantees SET
			guarantee_type = $2,
			nominal_amount = $3,
			nominal_amount_currency = $4,
			expiry_date = $5,
			applicant_name = $6,
			applicant_address = $7,
			beneficiary_name = $8,
			beneficiary_address = $9,
			updated_at = now()
		WHERE id = $1`

	tag, err := p.db.Exec(ctx, q,
		g.ID, string(g.GuaranteeType), g.NominalAmount, g.NominalAmountCurrency,
		g.ExpiryDate, g.ApplicantName, g.ApplicantAddress,
		g.BeneficiaryName, g.BeneficiaryAddress,
	)
	if err != nil {
		return mapReferenceConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (p *Postgres) UpdateGuaranteeStatus(ctx context.Context, id uuid.UUID, status core.GuaranteeStatus) error {
	const q = `UPDATE guarantees SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := p.db.Exec(ctx, q, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteGuarantee(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM guarantees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (p *Postgres) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM guarantees WHERE corporate_reference_number = $1)`
	var exists bool
	if err := p.db.QueryRow(ctx, q, reference).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanGuarantee(row pgx.Row) (*core.Guarantee, error) {
	var g core.Guarantee
	var gtype, status string
	err := row.Scan(
		&g.ID, &g.CorporateReferenceNumber, &gtype, &g.NominalAmount,
		&g.NominalAmountCurrency, &g.ExpiryDate, &g.ApplicantName, &g.ApplicantAddress,
		&g.BeneficiaryName, &g.BeneficiaryAddress, &status, &g.OwnerID,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.GuaranteeType = core.GuaranteeType(gtype)
	g.Status = core.GuaranteeStatus(status)
	g.NominalAmountCurrency = strings.TrimRight(g.NominalAmountCurrency, " ")
	return &g, nil
}

func collectGuarantees(rows pgx.Rows) ([]core.Guarantee, error) {
	defer rows.Close()
	var out []core.Guarantee
	for rows.Next() {
		g, err := scanGuarantee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// mapReferenceConflict translates a unique violation on the reference
// column into the sentinel the service retries on.
func mapReferenceConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.ConstraintName, "corporate_reference_number") {
		return core.ErrDuplicateReference
	}
	return err
}
