package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// ErrForbidden is returned by read operations when the actor may not
// see the requested entity. Lifecycle guards report false results
// instead; this sentinel exists only for fetches, where there is no
// result to negate.
var ErrForbidden = errors.New("forbidden")

// Service coordinates every guarantee, review and file operation. All
// methods take the acting actor explicitly; there is no ambient
// identity anywhere below the transport layer.
type Service struct {
	store Store
}

// NewService creates a service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CanViewGuarantee reports whether the actor may read the guarantee.
func CanViewGuarantee(a *Actor, g *Guarantee) bool {
	return a.IsAdmin() || g.OwnerID == a.ID
}

// CanViewFile reports whether the actor may read the file.
func CanViewFile(a *Actor, f *File) bool {
	return a.IsAdmin() || f.OwnerID == a.ID
}

// CreateGuarantee validates the input and persists a new draft owned
// by the actor. The reference number is always generated server-side;
// anything the client supplied for it is discarded. On validation
// failure the field errors come back with a nil guarantee.
func (s *Service) CreateGuarantee(ctx context.Context, actor *Actor, in GuaranteeInput) (*Guarantee, FieldErrors, error) {
	in.CorporateReferenceNumber = ""
	fe := validateInput(in, false)
	if len(fe) > 0 {
		return nil, fe, nil
	}

	g := buildGuarantee(in, actor.ID)
	for {
		ref, err := s.newReferenceNumber(ctx, s.store)
		if err != nil {
			return nil, nil, err
		}
		g.CorporateReferenceNumber = ref

		err = s.store.CreateGuarantee(ctx, g)
		if err == nil {
			slog.Info("guarantee created", "guarantee_id", g.ID, "reference", ref, "actor_id", actor.ID)
			return g, nil, nil
		}
		if !errors.Is(err, ErrDuplicateReference) {
			return nil, nil, err
		}
		// Another writer claimed the reference between the probe and
		// the insert; draw a fresh one.
	}
}

// UpdateGuarantee rewrites the mutable fields of a draft. The owner or
// an admin may update; the reference number is immutable and any value
// supplied for it is ignored.
func (s *Service) UpdateGuarantee(ctx context.Context, actor *Actor, id uuid.UUID, in GuaranteeInput) (bool, FieldErrors, error) {
	g, err := s.store.GuaranteeByID(ctx, id)
	if err != nil {
		return false, nil, err
	}
	if !actor.IsAdmin() && g.OwnerID != actor.ID {
		return false, nil, nil
	}
	if !g.Editable() {
		return false, nil, nil
	}

	in.CorporateReferenceNumber = ""
	fe := validateInput(in, false)
	if len(fe) > 0 {
		return false, fe, nil
	}

	upd := buildGuarantee(in, g.OwnerID)
	g.GuaranteeType = upd.GuaranteeType
	g.NominalAmount = upd.NominalAmount
	g.NominalAmountCurrency = upd.NominalAmountCurrency
	g.ExpiryDate = upd.ExpiryDate
	g.ApplicantName = upd.ApplicantName
	g.ApplicantAddress = upd.ApplicantAddress
	g.BeneficiaryName = upd.BeneficiaryName
	g.BeneficiaryAddress = upd.BeneficiaryAddress

	if err := s.store.UpdateGuaranteeFields(ctx, g); err != nil {
		return false, nil, err
	}
	slog.Info("guarantee updated", "guarantee_id", g.ID, "actor_id", actor.ID)
	return true, nil, nil
}

// GuaranteeByID fetches one guarantee, enforcing view access.
func (s *Service) GuaranteeByID(ctx context.Context, actor *Actor, id uuid.UUID) (*Guarantee, error) {
	g, err := s.store.GuaranteeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanViewGuarantee(actor, g) {
		return nil, ErrForbidden
	}
	return g, nil
}

// GuaranteesFor lists the guarantees visible to the actor: everything
// for admins, own guarantees for everyone else.
func (s *Service) GuaranteesFor(ctx context.Context, actor *Actor) ([]Guarantee, error) {
	if actor.IsAdmin() {
		return s.store.ListGuarantees(ctx)
	}
	return s.store.ListGuaranteesByOwner(ctx, actor.ID)
}

// PendingReviews lists the guarantees waiting on an admin decision,
// that is, everything in review or applied status. Admin only.
func (s *Service) PendingReviews(ctx context.Context, actor *Actor) ([]Guarantee, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.store.ListGuaranteesByStatus(ctx, StatusReview, StatusApplied)
}

// ReviewByGuarantee fetches the review attached to a guarantee the
// actor may see.
func (s *Service) ReviewByGuarantee(ctx context.Context, actor *Actor, guaranteeID uuid.UUID) (*Review, error) {
	g, err := s.store.GuaranteeByID(ctx, guaranteeID)
	if err != nil {
		return nil, err
	}
	if !CanViewGuarantee(actor, g) {
		return nil, ErrForbidden
	}
	return s.store.ReviewByGuarantee(ctx, g.ID)
}
