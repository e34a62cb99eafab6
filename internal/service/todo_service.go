package service

import (
	"context"
	"time"

	"todolist_backend/internal/clock"
	"todolist_backend/internal/domain"

	"github.com/google/uuid"
)

const (
	// RecentWindow is how far back ListRecentlyAdded looks.
	RecentWindow = 24 * time.Hour

	// DueSoonWindow is how far ahead ListDueSoon looks. The original
	// endpoint is labeled "due within two days" but has always used a
	// one-day threshold; kept literal, change here if product says so.
	DueSoonWindow = 24 * time.Hour
)

// TodoStore is the persistence surface the service runs on. Implemented
// by repository.TodoRepository; an in-memory version backs the tests.
type TodoStore interface {
	Insert(ctx context.Context, it *domain.TodoItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TodoItem, error)
	GetByIDForOwner(ctx context.Context, id uuid.UUID, owner int64) (*domain.TodoItem, error)
	ListByOwner(ctx context.Context, owner int64, done bool) ([]*domain.TodoItem, error)
	ListByTag(ctx context.Context, tag string) ([]*domain.TodoItem, error)
	ListByTagForOwner(ctx context.Context, owner int64, tag string) ([]*domain.TodoItem, error)
	ListAddedSince(ctx context.Context, owner int64, since time.Time) ([]*domain.TodoItem, error)
	ListDueBefore(ctx context.Context, owner int64, before time.Time) ([]*domain.TodoItem, error)
	ListDueInMonth(ctx context.Context, owner int64, month int) ([]*domain.TodoItem, error)
	UpdateFields(ctx context.Context, id uuid.UUID, owner int64, title, content string, tags []string) (bool, error)
	ToggleDone(ctx context.Context, id uuid.UUID, owner int64) (bool, error)
	Delete(ctx context.Context, id uuid.UUID, owner int64) error
	SetFile(ctx context.Context, id uuid.UUID, owner int64, path string, size int64) (bool, error)
}

// TodoService owns the todo-item lifecycle: validation, id assignment,
// timestamping and the time-window queries. It never logs; failures come
// back as typed errors or booleans for the HTTP layer to translate.
type TodoService struct {
	store TodoStore
	clock clock.Clock
}

func NewTodoService(store TodoStore, clk clock.Clock) *TodoService {
	return &TodoService{store: store, clock: clk}
}

type CreateTodoInput struct {
	Title   string
	Content string
	Tags    []string
	// DueTo may stay zero, meaning no due date.
	DueTo time.Time
}

type UpdateTodoInput struct {
	Title   string
	Content string
	Tags    []string
}

// Create validates the input, assigns a fresh id, stamps the added time
// from the clock and persists the item with its empty file attachment.
func (s *TodoService) Create(ctx context.Context, owner int64, in CreateTodoInput) (*domain.TodoItem, error) {
	it := &domain.TodoItem{
		ID:      uuid.New(),
		UserID:  owner,
		Title:   in.Title,
		Content: in.Content,
		Done:    false,
		Added:   s.clock.Now(),
		DueTo:   in.DueTo,
		Tags:    in.Tags,
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}

	it.File = domain.TodoItemFile{TodoID: it.ID, Path: "", Size: 0}

	if err := s.store.Insert(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// GetByID looks an item up by id alone. The owner is deliberately not
// checked here; mutating paths always re-resolve by (id, owner).
func (s *TodoService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TodoItem, error) {
	return s.store.GetByID(ctx, id)
}

// GetForOwner is the owner-checked lookup the HTTP layer uses.
func (s *TodoService) GetForOwner(ctx context.Context, id uuid.UUID, owner int64) (*domain.TodoItem, error) {
	return s.store.GetByIDForOwner(ctx, id, owner)
}

func (s *TodoService) ListIncomplete(ctx context.Context, owner int64) ([]*domain.TodoItem, error) {
	return s.store.ListByOwner(ctx, owner, false)
}

func (s *TodoService) ListComplete(ctx context.Context, owner int64) ([]*domain.TodoItem, error) {
	return s.store.ListByOwner(ctx, owner, true)
}

// ListAll returns complete items followed by incomplete ones. Order within
// each group is whatever the store produced.
func (s *TodoService) ListAll(ctx context.Context, owner int64) ([]*domain.TodoItem, error) {
	complete, err := s.store.ListByOwner(ctx, owner, true)
	if err != nil {
		return nil, err
	}
	incomplete, err := s.store.ListByOwner(ctx, owner, false)
	if err != nil {
		return nil, err
	}
	return append(complete, incomplete...), nil
}

// ListByTag matches exactly, across all owners.
func (s *TodoService) ListByTag(ctx context.Context, tag string) ([]*domain.TodoItem, error) {
	return s.store.ListByTag(ctx, tag)
}

func (s *TodoService) ListByTagForOwner(ctx context.Context, owner int64, tag string) ([]*domain.TodoItem, error) {
	return s.store.ListByTagForOwner(ctx, owner, tag)
}

// ListRecentlyAdded returns the owner's incomplete items added within the
// last RecentWindow, boundary inclusive.
func (s *TodoService) ListRecentlyAdded(ctx context.Context, owner int64) ([]*domain.TodoItem, error) {
	return s.store.ListAddedSince(ctx, owner, s.clock.Now().Add(-RecentWindow))
}

// ListDueSoon returns the owner's incomplete items due at or before
// now + DueSoonWindow. Overdue items match too.
func (s *TodoService) ListDueSoon(ctx context.Context, owner int64) ([]*domain.TodoItem, error) {
	return s.store.ListDueBefore(ctx, owner, s.clock.Now().Add(DueSoonWindow))
}

// ListByMonth returns the owner's incomplete items whose due date falls in
// the given month (1-12), any year. Items without a due date never match.
func (s *TodoService) ListByMonth(ctx context.Context, owner int64, month int) ([]*domain.TodoItem, error) {
	if month < 1 || month > 12 {
		return nil, &domain.ValidationError{Field: "month", Reason: "must be 1-12"}
	}
	return s.store.ListDueInMonth(ctx, owner, month)
}

// Update overwrites title, content and tags. The done flag and both
// timestamps are untouched. Returns false when no (id, owner) match.
func (s *TodoService) Update(ctx context.Context, id uuid.UUID, owner int64, in UpdateTodoInput) (bool, error) {
	probe := domain.TodoItem{Title: in.Title, Content: in.Content, Tags: in.Tags}
	if err := probe.Validate(); err != nil {
		return false, err
	}
	return s.store.UpdateFields(ctx, id, owner, in.Title, in.Content, in.Tags)
}

// ToggleDone flips the completion flag. Returns false when no match.
func (s *TodoService) ToggleDone(ctx context.Context, id uuid.UUID, owner int64) (bool, error) {
	return s.store.ToggleDone(ctx, id, owner)
}

// Delete removes the item and its attachment together. Unlike the other
// mutators it fails loudly: a missing row yields domain.ErrNotFound.
func (s *TodoService) Delete(ctx context.Context, id uuid.UUID, owner int64) error {
	return s.store.Delete(ctx, id, owner)
}

// AttachFile records the stored path and byte size for the item's
// attachment, replacing whatever was there. The raw bytes were already
// written by the storage gateway before this is called.
func (s *TodoService) AttachFile(ctx context.Context, id uuid.UUID, owner int64, path string, size int64) (bool, error) {
	return s.store.SetFile(ctx, id, owner, path, size)
}
