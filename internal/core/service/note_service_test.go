package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// stubNoteRepo mirrors the Mongo repository's owner-conjoined queries in
// memory: every single-note lookup matches both the note ID and the owner.
type stubNoteRepo struct {
	notes   map[string]*domain.Note
	nextID  int
	updates int
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[string]*domain.Note)}
}

func cloneNote(n *domain.Note) *domain.Note {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}

func (r *stubNoteRepo) Insert(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.nextID++
	created := cloneNote(note)
	created.ID = fmt.Sprintf("note-%d", r.nextID)
	r.notes[created.ID] = cloneNote(created)
	return cloneNote(created), nil
}

func (r *stubNoteRepo) FindByOwner(_ context.Context, userID string) ([]*domain.Note, error) {
	out := []*domain.Note{}
	for _, n := range r.notes {
		if n.UserID == userID {
			out = append(out, cloneNote(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubNoteRepo) FindOne(_ context.Context, id, userID string) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNoteNotFound
	}
	return cloneNote(n), nil
}

func (r *stubNoteRepo) Update(_ context.Context, id, userID, content string) (*domain.Note, error) {
	r.updates++
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNoteNotFound
	}
	n.Content = content
	n.UpdatedAt = time.Now().UTC()
	return cloneNote(n), nil
}

func (r *stubNoteRepo) Delete(_ context.Context, id, userID string) error {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return domain.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *stubNoteRepo) DeleteByOwner(_ context.Context, userID string) error {
	for id, n := range r.notes {
		if n.UserID == userID {
			delete(r.notes, id)
		}
	}
	return nil
}

func newTestNoteService(repo *stubNoteRepo) *NoteService {
	return NewNoteService(repo, zerolog.Nop())
}

func TestNoteService_CreateAndGet(t *testing.T) {
	svc := newTestNoteService(newStubNoteRepo())

	created, err := svc.Create(context.Background(), "user-a", "shopping list")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected note ID to be assigned")
	}
	if created.UserID != "user-a" {
		t.Fatalf("note not stamped with owner: %q", created.UserID)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("fresh note should have created_at == updated_at")
	}

	got, err := svc.Get(context.Background(), "user-a", created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Content != "shopping list" {
		t.Fatalf("unexpected content: %q", got.Content)
	}
}

func TestNoteService_Create_EmptyContent(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newTestNoteService(repo)

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Create(context.Background(), "user-a", content); err != domain.ErrEmptyContent {
			t.Fatalf("expected ErrEmptyContent for %q, got %v", content, err)
		}
	}
	if len(repo.notes) != 0 {
		t.Fatalf("blank content must not reach the store, found %d notes", len(repo.notes))
	}
}

func TestNoteService_OwnershipIsolation(t *testing.T) {
	svc := newTestNoteService(newStubNoteRepo())

	note, err := svc.Create(context.Background(), "user-a", "private")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Another user's note is indistinguishable from a missing one.
	if _, err := svc.Get(context.Background(), "user-b", note.ID); err != domain.ErrNoteNotFound {
		t.Fatalf("expected ErrNoteNotFound for foreign get, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "user-b", note.ID, "hijacked"); err != domain.ErrNoteNotFound {
		t.Fatalf("expected ErrNoteNotFound for foreign update, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-b", note.ID); err != domain.ErrNoteNotFound {
		t.Fatalf("expected ErrNoteNotFound for foreign delete, got %v", err)
	}

	got, err := svc.Get(context.Background(), "user-a", note.ID)
	if err != nil {
		t.Fatalf("owner lost access to own note: %v", err)
	}
	if got.Content != "private" {
		t.Fatalf("foreign update leaked through: %q", got.Content)
	}
}

func TestNoteService_List_NewestFirst(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newTestNoteService(repo)

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		n, err := svc.Create(context.Background(), "user-a", fmt.Sprintf("note %d", i))
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		// Stamp distinct timestamps; wall-clock resolution is not reliable.
		repo.notes[n.ID].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}
	if _, err := svc.Create(context.Background(), "user-b", "other tenant"); err != nil {
		t.Fatalf("create for user-b failed: %v", err)
	}

	notes, err := svc.List(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i := 1; i < len(notes); i++ {
		if notes[i].CreatedAt.After(notes[i-1].CreatedAt) {
			t.Fatalf("notes out of order at index %d", i)
		}
	}
}

func TestNoteService_List_Empty(t *testing.T) {
	svc := newTestNoteService(newStubNoteRepo())

	notes, err := svc.List(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if notes == nil {
		t.Fatalf("expected non-nil empty slice")
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(notes))
	}
}

func TestNoteService_Update_EmptyContentLeavesStore(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newTestNoteService(repo)

	note, err := svc.Create(context.Background(), "user-a", "original")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), "user-a", note.ID, "  "); err != domain.ErrEmptyContent {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("failed validation must not touch the store")
	}

	got, _ := svc.Get(context.Background(), "user-a", note.ID)
	if got.Content != "original" {
		t.Fatalf("content changed after rejected update: %q", got.Content)
	}
}

func TestNoteService_Update_BumpsUpdatedAt(t *testing.T) {
	svc := newTestNoteService(newStubNoteRepo())

	note, err := svc.Create(context.Background(), "user-a", "v1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), "user-a", note.ID, "v2")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Content != "v2" {
		t.Fatalf("unexpected content: %q", updated.Content)
	}
	if updated.UpdatedAt.Before(note.UpdatedAt) {
		t.Fatalf("updated_at went backwards")
	}
	if !updated.CreatedAt.Equal(note.CreatedAt) {
		t.Fatalf("created_at must not change on update")
	}
}

func TestNoteService_Delete_Twice(t *testing.T) {
	svc := newTestNoteService(newStubNoteRepo())

	note, err := svc.Create(context.Background(), "user-a", "ephemeral")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-a", note.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-a", note.ID); err != domain.ErrNoteNotFound {
		t.Fatalf("expected ErrNoteNotFound on second delete, got %v", err)
	}
}
