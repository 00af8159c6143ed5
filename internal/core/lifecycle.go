package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// SubmitForReview moves a draft guarantee into review and opens its
// review record, both inside one transaction. Only the owning actor
// may submit; admins get no exemption here.
func (s *Service) SubmitForReview(ctx context.Context, actor *Actor, id uuid.UUID) (bool, error) {
	g, err := s.store.GuaranteeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if g.OwnerID != actor.ID || g.Status != StatusDraft {
		return false, nil
	}

	err = s.store.InTx(ctx, func(tx Store) error {
		if err := tx.UpdateGuaranteeStatus(ctx, g.ID, StatusReview); err != nil {
			return err
		}
		return tx.CreateReview(ctx, &Review{ID: uuid.New(), GuaranteeID: g.ID})
	})
	if err != nil {
		return false, err
	}
	slog.Info("guarantee submitted for review", "guarantee_id", g.ID, "actor_id", actor.ID)
	return true, nil
}

// ApplyGuarantee moves a guarantee from review to applied. Admin only.
func (s *Service) ApplyGuarantee(ctx context.Context, actor *Actor, id uuid.UUID) (bool, error) {
	if !actor.IsAdmin() {
		return false, nil
	}
	g, err := s.store.GuaranteeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if g.Status != StatusReview {
		return false, nil
	}
	if err := s.store.UpdateGuaranteeStatus(ctx, g.ID, StatusApplied); err != nil {
		return false, err
	}
	slog.Info("guarantee applied", "guarantee_id", g.ID, "actor_id", actor.ID)
	return true, nil
}

// IssueGuarantee moves an applied guarantee to issued and stamps the
// acting admin on its review record.
func (s *Service) IssueGuarantee(ctx context.Context, actor *Actor, id uuid.UUID) (bool, error) {
	if !actor.IsAdmin() {
		return false, nil
	}
	g, err := s.store.GuaranteeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if g.Status != StatusApplied {
		return false, nil
	}

	err = s.store.InTx(ctx, func(tx Store) error {
		if err := tx.UpdateGuaranteeStatus(ctx, g.ID, StatusIssued); err != nil {
			return err
		}
		return stampReview(ctx, tx, g.ID, actor.ID, nil)
	})
	if err != nil {
		return false, err
	}
	slog.Info("guarantee issued", "guarantee_id", g.ID, "actor_id", actor.ID)
	return true, nil
}

// RejectGuarantee moves a guarantee in review or applied to rejected,
// recording the mandatory notes and the acting admin on its review.
// Empty notes are a guard failure, not a validation error.
func (s *Service) RejectGuarantee(ctx context.Context, actor *Actor, id uuid.UUID, notes string) (bool, error) {
	if !actor.IsAdmin() {
		return false, nil
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return false, nil
	}
	g, err := s.store.GuaranteeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !g.Rejectable() {
		return false, nil
	}

	err = s.store.InTx(ctx, func(tx Store) error {
		if err := tx.UpdateGuaranteeStatus(ctx, g.ID, StatusRejected); err != nil {
			return err
		}
		return stampReview(ctx, tx, g.ID, actor.ID, &notes)
	})
	if err != nil {
		return false, err
	}
	slog.Info("guarantee rejected", "guarantee_id", g.ID, "actor_id", actor.ID)
	return true, nil
}

// DeleteGuarantee removes a draft or rejected guarantee. The owner or
// an admin may delete; the review record goes with it via the foreign
// key cascade.
func (s *Service) DeleteGuarantee(ctx context.Context, actor *Actor, id uuid.UUID) (bool, error) {
	g, err := s.store.GuaranteeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !actor.IsAdmin() && g.OwnerID != actor.ID {
		return false, nil
	}
	if !g.Deletable() {
		return false, nil
	}
	if err := s.store.DeleteGuarantee(ctx, g.ID); err != nil {
		return false, err
	}
	slog.Info("guarantee deleted", "guarantee_id", g.ID, "actor_id", actor.ID)
	return true, nil
}

// stampReview records the reviewer, and optionally notes, on the
// guarantee's review. A guarantee without a review is left alone.
func stampReview(ctx context.Context, tx Store, guaranteeID, reviewerID uuid.UUID, notes *string) error {
	r, err := tx.ReviewByGuarantee(ctx, guaranteeID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	r.ReviewerID = &reviewerID
	if notes != nil {
		r.ReviewNotes = notes
	}
	return tx.UpdateReview(ctx, r)
}
