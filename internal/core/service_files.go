package core

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// StoreFile records an uploaded payload verbatim, owned by the actor.
// The declared type comes from the upload's filename extension and is
// not checked here; unsupported types are rejected when processing
// runs, so the failure is recorded on the file rather than lost in a
// rejected request.
func (s *Service) StoreFile(ctx context.Context, actor *Actor, filename, fileType string, contents []byte) (*File, error) {
	f := &File{
		ID:           uuid.New(),
		Filename:     filename,
		FileType:     strings.ToLower(strings.TrimSpace(fileType)),
		FileContents: contents,
		Status:       FileUploaded,
		OwnerID:      actor.ID,
	}
	if err := s.store.CreateFile(ctx, f); err != nil {
		return nil, err
	}
	slog.Info("file stored",
		"file_id", f.ID,
		"filename", f.Filename,
		"file_type", f.FileType,
		"size", len(contents),
		"actor_id", actor.ID,
	)
	return f, nil
}

// FileByID fetches one file, enforcing view access.
func (s *Service) FileByID(ctx context.Context, actor *Actor, id uuid.UUID) (*File, error) {
	f, err := s.store.FileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanViewFile(actor, f) {
		return nil, ErrForbidden
	}
	return f, nil
}

// FilesFor lists the files visible to the actor: everything for
// admins, own uploads for everyone else.
func (s *Service) FilesFor(ctx context.Context, actor *Actor) ([]File, error) {
	if actor.IsAdmin() {
		return s.store.ListFiles(ctx)
	}
	return s.store.ListFilesByOwner(ctx, actor.ID)
}

// ActorByID resolves an actor, typically from the identity header.
func (s *Service) ActorByID(ctx context.Context, id uuid.UUID) (*Actor, error) {
	return s.store.ActorByID(ctx, id)
}
