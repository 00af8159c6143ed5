package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for service-level tests.
type fakeStore struct {
	mu         sync.Mutex
	actors     map[uuid.UUID]*Actor
	guarantees map[uuid.UUID]*Guarantee
	reviews    map[uuid.UUID]*Review // keyed by guarantee ID
	files      map[uuid.UUID]*File

	// createGuaranteeErr, when set, fails the next CreateGuarantee
	// call and then clears itself.
	createGuaranteeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		actors:     make(map[uuid.UUID]*Actor),
		guarantees: make(map[uuid.UUID]*Guarantee),
		reviews:    make(map[uuid.UUID]*Review),
		files:      make(map[uuid.UUID]*File),
	}
}

func (f *fakeStore) addActor(role Role) *Actor {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := &Actor{ID: uuid.New(), Name: "Test " + string(role), Email: string(role) + "@example.com", Role: role, CreatedAt: time.Now()}
	f.actors[a.ID] = a
	return a
}

func (f *fakeStore) addFile(owner *Actor, filename, fileType string, contents []byte, status FileStatus) *File {
	f.mu.Lock()
	defer f.mu.Unlock()
	file := &File{
		ID:           uuid.New(),
		Filename:     filename,
		FileType:     fileType,
		FileContents: contents,
		Status:       status,
		OwnerID:      owner.ID,
	}
	f.files[file.ID] = file
	return file
}

func (f *fakeStore) InTx(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func (f *fakeStore) CreateGuarantee(ctx context.Context, g *Guarantee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createGuaranteeErr != nil {
		err := f.createGuaranteeErr
		f.createGuaranteeErr = nil
		return err
	}
	for _, existing := range f.guarantees {
		if existing.CorporateReferenceNumber == g.CorporateReferenceNumber {
			return ErrDuplicateReference
		}
	}
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	f.guarantees[g.ID] = &cp
	return nil
}

func (f *fakeStore) GuaranteeByID(ctx context.Context, id uuid.UUID) (*Guarantee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.guarantees[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeStore) ListGuarantees(ctx context.Context) ([]Guarantee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Guarantee
	for _, g := range f.guarantees {
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeStore) ListGuaranteesByOwner(ctx context.Context, ownerID uuid.UUID) ([]Guarantee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Guarantee
	for _, g := range f.guarantees {
		if g.OwnerID == ownerID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeStore) ListGuaranteesByStatus(ctx context.Context, statuses ...GuaranteeStatus) ([]Guarantee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Guarantee
	for _, g := range f.guarantees {
		for _, s := range statuses {
			if g.Status == s {
				out = append(out, *g)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateGuaranteeFields(ctx context.Context, g *Guarantee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.guarantees[g.ID]
	if !ok {
		return ErrNotFound
	}
	cp := *g
	cp.Status = stored.Status
	cp.UpdatedAt = time.Now()
	f.guarantees[g.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateGuaranteeStatus(ctx context.Context, id uuid.UUID, status GuaranteeStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.guarantees[id]
	if !ok {
		return ErrNotFound
	}
	g.Status = status
	g.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) DeleteGuarantee(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.guarantees[id]; !ok {
		return ErrNotFound
	}
	delete(f.guarantees, id)
	delete(f.reviews, id)
	return nil
}

func (f *fakeStore) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.guarantees {
		if g.CorporateReferenceNumber == reference {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateReview(ctx context.Context, r *Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	f.reviews[r.GuaranteeID] = &cp
	return nil
}

func (f *fakeStore) ReviewByGuarantee(ctx context.Context, guaranteeID uuid.UUID) (*Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[guaranteeID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) UpdateReview(ctx context.Context, r *Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[r.GuaranteeID]; !ok {
		return ErrNotFound
	}
	cp := *r
	cp.UpdatedAt = time.Now()
	f.reviews[r.GuaranteeID] = &cp
	return nil
}

func (f *fakeStore) CreateFile(ctx context.Context, file *File) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file.CreatedAt = time.Now()
	file.UpdatedAt = file.CreatedAt
	cp := *file
	f.files[file.ID] = &cp
	return nil
}

func (f *fakeStore) FileByID(ctx context.Context, id uuid.UUID) (*File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *file
	return &cp, nil
}

func (f *fakeStore) ListFiles(ctx context.Context) ([]File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []File
	for _, file := range f.files {
		out = append(out, *file)
	}
	return out, nil
}

func (f *fakeStore) ListFilesByOwner(ctx context.Context, ownerID uuid.UUID) ([]File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []File
	for _, file := range f.files {
		if file.OwnerID == ownerID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateFileStatus(ctx context.Context, id uuid.UUID, status FileStatus, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return ErrNotFound
	}
	file.Status = status
	file.ProcessingNotes = notes
	file.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) ActorByID(ctx context.Context, id uuid.UUID) (*Actor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.actors[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) ActorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.actors[id]
	return ok, nil
}

// newTestService wires a service over a fresh fake store with one
// regular user and one admin.
func newTestService() (*Service, *fakeStore, *Actor, *Actor) {
	store := newFakeStore()
	user := store.addActor(RoleUser)
	admin := store.addActor(RoleAdmin)
	return NewService(store), store, user, admin
}

// pinClock fixes the package clock for the duration of a test.
func pinClock(t interface{ Cleanup(func()) }, at time.Time) {
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

// testToday is the pinned "current time" used across these tests.
var testToday = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)
