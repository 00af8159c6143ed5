package core

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by store lookups when no row matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicateReference is returned when a write would violate the
// unique constraint on corporate_reference_number.
var ErrDuplicateReference = errors.New("corporate reference number already taken")

// Store is the persistence contract for the service. The repository
// package implements it against Postgres; tests use an in-memory fake.
//
// InTx runs fn against a store bound to a single transaction and
// commits if fn returns nil. Guarantee status changes that also touch
// the review record go through it.
type Store interface {
	InTx(ctx context.Context, fn func(Store) error) error

	CreateGuarantee(ctx context.Context, g *Guarantee) error
	GuaranteeByID(ctx context.Context, id uuid.UUID) (*Guarantee, error)
	ListGuarantees(ctx context.Context) ([]Guarantee, error)
	ListGuaranteesByOwner(ctx context.Context, ownerID uuid.UUID) ([]Guarantee, error)
	ListGuaranteesByStatus(ctx context.Context, statuses ...GuaranteeStatus) ([]Guarantee, error)
	UpdateGuaranteeFields(ctx context.Context, g *Guarantee) error
	UpdateGuaranteeStatus(ctx context.Context, id uuid.UUID, status GuaranteeStatus) error
	DeleteGuarantee(ctx context.Context, id uuid.UUID) error
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	CreateReview(ctx context.Context, r *Review) error
	ReviewByGuarantee(ctx context.Context, guaranteeID uuid.UUID) (*Review, error)
	UpdateReview(ctx context.Context, r *Review) error

	CreateFile(ctx context.Context, f *File) error
	FileByID(ctx context.Context, id uuid.UUID) (*File, error)
	ListFiles(ctx context.Context) ([]File, error)
	ListFilesByOwner(ctx context.Context, ownerID uuid.UUID) ([]File, error)
	UpdateFileStatus(ctx context.Context, id uuid.UUID, status FileStatus, notes string) error

	ActorByID(ctx context.Context, id uuid.UUID) (*Actor, error)
	ActorExists(ctx context.Context, id uuid.UUID) (bool, error)
}
