package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tfgate/guarantees/internal/core"
)

// handleListGuarantees returns the guarantees visible to the actor.
func (s *Server) handleListGuarantees(w http.ResponseWriter, r *http.Request) {
	guarantees, err := s.service.GuaranteesFor(r.Context(), actorFrom(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guarantees": guarantees})
}

// handleCreateGuarantee creates a draft from the posted fields. The
// reference number is generated server-side.
func (s *Server) handleCreateGuarantee(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeGuaranteeInput(w, r)
	if !ok {
		return
	}

	g, fe, err := s.service.CreateGuarantee(r.Context(), actorFrom(r), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if len(fe) > 0 {
		respondValidation(w, fe)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleGetGuarantee(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	g, err := s.service.GuaranteeByID(r.Context(), actorFrom(r), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// handleUpdateGuarantee rewrites the mutable fields of a draft.
func (s *Server) handleUpdateGuarantee(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	in, ok := decodeGuaranteeInput(w, r)
	if !ok {
		return
	}

	done, fe, err := s.service.UpdateGuarantee(r.Context(), actorFrom(r), id, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if len(fe) > 0 {
		respondValidation(w, fe)
		return
	}
	if !done {
		writeError(w, http.StatusConflict, "guarantee cannot be updated")
		return
	}
	g, err := s.service.GuaranteeByID(r.Context(), actorFrom(r), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGuarantee(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "guarantee cannot be deleted", s.service.DeleteGuarantee)
}

func (s *Server) handleSubmitForReview(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "guarantee cannot be submitted for review", s.service.SubmitForReview)
}

func (s *Server) handleApplyGuarantee(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "guarantee cannot be applied", s.service.ApplyGuarantee)
}

func (s *Server) handleIssueGuarantee(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "guarantee cannot be issued", s.service.IssueGuarantee)
}

// handleRejectGuarantee rejects a guarantee with mandatory notes.
func (s *Server) handleRejectGuarantee(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		ReviewNotes string `json:"review_notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	done, err := s.service.RejectGuarantee(r.Context(), actorFrom(r), id, body.ReviewNotes)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !done {
		writeError(w, http.StatusConflict, "guarantee cannot be rejected")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(core.StatusRejected)})
}

// handlePendingReviews lists guarantees waiting on an admin decision.
func (s *Server) handlePendingReviews(w http.ResponseWriter, r *http.Request) {
	guarantees, err := s.service.PendingReviews(r.Context(), actorFrom(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guarantees": guarantees})
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	review, err := s.service.ReviewByGuarantee(r.Context(), actorFrom(r), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// handleTransition runs a guarded lifecycle transition and maps a
// false result to 409.
func (s *Server) handleTransition(
	w http.ResponseWriter,
	r *http.Request,
	conflictMsg string,
	fn func(ctx context.Context, actor *core.Actor, id uuid.UUID) (bool, error),
) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	done, err := fn(r.Context(), actorFrom(r), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !done {
		writeError(w, http.StatusConflict, conflictMsg)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeGuaranteeInput reads the nine guarantee fields from a JSON
// body. Numbers and booleans are accepted anywhere a string is, so
// numeric amounts round-trip the same way they do in bulk ingestion.
func decodeGuaranteeInput(w http.ResponseWriter, r *http.Request) (core.GuaranteeInput, bool) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return core.GuaranteeInput{}, false
	}

	return core.GuaranteeInput{
		CorporateReferenceNumber: stringField(body, "corporate_reference_number"),
		GuaranteeType:            stringField(body, "guarantee_type"),
		NominalAmount:            stringField(body, "nominal_amount"),
		NominalAmountCurrency:    stringField(body, "nominal_amount_currency"),
		ExpiryDate:               stringField(body, "expiry_date"),
		ApplicantName:            stringField(body, "applicant_name"),
		ApplicantAddress:         stringField(body, "applicant_address"),
		BeneficiaryName:          stringField(body, "beneficiary_name"),
		BeneficiaryAddress:       stringField(body, "beneficiary_address"),
	}, true
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// uuidParam parses a UUID path parameter, answering 404 on garbage so
// malformed IDs and missing rows look the same to clients.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}
