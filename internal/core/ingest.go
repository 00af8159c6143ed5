package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ProcessFile runs the bulk ingestion pipeline for an uploaded file:
// parse, alias-map, validate and persist each record, then stamp the
// file with a processing summary.
//
// Per-record failures never fail the file; it ends up processed with a
// "Processed with errors" note and the per-row details in the result.
// Only an unsupported file type or an unrecoverable parse error marks
// the file failed. Files that already left the uploaded state, or that
// the actor may not touch, produce a false result and no change.
func (s *Service) ProcessFile(ctx context.Context, actor *Actor, fileID uuid.UUID) (*BatchResult, bool, error) {
	f, err := s.store.FileByID(ctx, fileID)
	if err != nil {
		return nil, false, err
	}
	if !actor.IsAdmin() && f.OwnerID != actor.ID {
		return nil, false, nil
	}
	if f.Status != FileUploaded {
		return nil, false, nil
	}

	fileType := strings.ToLower(f.FileType)
	if !SupportedFileType(fileType) {
		if err := s.store.UpdateFileStatus(ctx, f.ID, FileFailed, "Unsupported file type"); err != nil {
			return nil, false, err
		}
		slog.Warn("file rejected", "file_id", f.ID, "file_type", f.FileType)
		return nil, false, nil
	}

	records, err := ParseRecords(f.FileContents, fileType)
	if err != nil {
		if uerr := s.store.UpdateFileStatus(ctx, f.ID, FileFailed, err.Error()); uerr != nil {
			return nil, false, uerr
		}
		slog.Warn("file failed to parse", "file_id", f.ID, "error", err)
		return nil, false, nil
	}

	result, err := s.ingestRecords(ctx, records, f.OwnerID)
	if err != nil {
		return nil, false, err
	}

	if err := s.store.UpdateFileStatus(ctx, f.ID, FileProcessed, processingNotes(result)); err != nil {
		return nil, false, err
	}
	slog.Info("file processed",
		"file_id", f.ID,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
	)
	return result, true, nil
}

// ingestRecords validates and persists each mapped record, counting
// outcomes per row. Records missing a canonical field after alias
// mapping are dropped before the row counter even sees them.
func (s *Service) ingestRecords(ctx context.Context, records []Record, ownerID uuid.UUID) (*BatchResult, error) {
	result := &BatchResult{}
	row := 0
	for _, rec := range records {
		mapped, ok := MapFields(rec)
		if !ok {
			continue
		}
		row++

		in := InputFromRecord(mapped)
		fe := validateInput(in, true)
		if err := s.applyStoredChecks(ctx, in, ownerID, fe); err != nil {
			return nil, err
		}
		if len(fe) > 0 {
			result.FailedCount++
			result.Errors = append(result.Errors, RowError{Row: row, Fields: fe, Data: mapped})
			continue
		}

		g := buildGuarantee(in, ownerID)
		if err := s.store.CreateGuarantee(ctx, g); err != nil {
			if errors.Is(err, ErrDuplicateReference) {
				// Lost a race with a concurrent writer holding the
				// same reference; account for it like any other
				// uniqueness failure.
				fe := FieldErrors{}
				fe.add("corporate_reference_number", "has already been taken")
				result.FailedCount++
				result.Errors = append(result.Errors, RowError{Row: row, Fields: fe, Data: mapped})
				continue
			}
			return nil, err
		}
		result.SuccessCount++
	}
	return result, nil
}

// applyStoredChecks runs the rules that need the store: reference
// uniqueness and owner existence. Findings land in fe alongside the
// stateless rule violations.
func (s *Service) applyStoredChecks(ctx context.Context, in GuaranteeInput, ownerID uuid.UUID, fe FieldErrors) error {
	if ref := strings.TrimSpace(in.CorporateReferenceNumber); ref != "" && len(fe["corporate_reference_number"]) == 0 {
		exists, err := s.store.ReferenceExists(ctx, ref)
		if err != nil {
			return err
		}
		if exists {
			fe.add("corporate_reference_number", "has already been taken")
		}
	}
	ok, err := s.store.ActorExists(ctx, ownerID)
	if err != nil {
		return err
	}
	if !ok {
		fe.add("owner", "does not exist")
	}
	return nil
}

func processingNotes(result *BatchResult) string {
	if result.FailedCount == 0 {
		return fmt.Sprintf("Successfully processed %d guarantees", result.SuccessCount)
	}
	return fmt.Sprintf("Processed with errors: %d successful, %d failed",
		result.SuccessCount, result.FailedCount)
}
