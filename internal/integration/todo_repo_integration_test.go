package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"todolist_backend/internal/domain"
	"todolist_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func seedUser(t *testing.T, db *pgxpool.Pool) int64 {
	t.Helper()
	u := &domain.User{
		Email:        "it-" + uuid.NewString() + "@example.com",
		PasswordHash: "x",
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func TestTodoRepository_Insert_GetByID(t *testing.T) {
	db := connectDB(t)
	repo := repository.NewTodoRepository(db)
	owner := seedUser(t, db)
	ctx := context.Background()

	it := &domain.TodoItem{
		ID:      uuid.New(),
		UserID:  owner,
		Title:   "Buy milk",
		Content: "2% organic milk from the store",
		Added:   time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
		Tags:    []string{"errand", "home"},
	}
	it.File = domain.TodoItemFile{TodoID: it.ID}

	if err := repo.Insert(ctx, it); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.GetByID(ctx, it.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Title != it.Title || got.Content != it.Content || got.Done {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Added.Equal(it.Added) {
		t.Fatalf("added: got %v, want %v", got.Added, it.Added)
	}
	if !got.DueTo.IsZero() {
		t.Fatalf("due date must come back unset, got %v", got.DueTo)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "errand" || got.Tags[1] != "home" {
		t.Fatalf("tags: got %v", got.Tags)
	}
	if got.File.TodoID != it.ID || got.File.Path != "" || got.File.Size != 0 {
		t.Fatalf("file row: got %+v", got.File)
	}
}

func TestTodoRepository_TagMatchIsExact(t *testing.T) {
	db := connectDB(t)
	repo := repository.NewTodoRepository(db)
	owner := seedUser(t, db)
	ctx := context.Background()

	// Tags unique to this run so reruns against a dirty database pass.
	tag := "home-" + uuid.NewString()[:8]
	it := &domain.TodoItem{
		ID: uuid.New(), UserID: owner, Title: "tagged item",
		Tags: []string{tag, tag + "work"},
	}
	if err := repo.Insert(ctx, it); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.ListByTagForOwner(ctx, owner, tag)
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(got) != 1 || got[0].ID != it.ID {
		t.Fatalf("expected one exact match, got %d", len(got))
	}

	got, err = repo.ListByTagForOwner(ctx, owner, tag[:len(tag)-1])
	if err != nil {
		t.Fatalf("list by tag prefix: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("prefix must not match, got %d items", len(got))
	}
}

func TestTodoRepository_TagMatchIsLiteral(t *testing.T) {
	db := connectDB(t)
	repo := repository.NewTodoRepository(db)
	owner := seedUser(t, db)
	ctx := context.Background()

	abc := &domain.TodoItem{
		ID: uuid.New(), UserID: owner, Title: "plain tag",
		Tags: []string{"abc"},
	}
	if err := repo.Insert(ctx, abc); err != nil {
		t.Fatalf("insert: %v", err)
	}
	underscored := &domain.TodoItem{
		ID: uuid.New(), UserID: owner, Title: "underscored tag",
		Tags: []string{"a_c"},
	}
	if err := repo.Insert(ctx, underscored); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Pattern characters are ordinary characters in a tag. "%" matches
	// nothing and "a_c" matches only itself, not "abc".
	got, err := repo.ListByTagForOwner(ctx, owner, "%")
	if err != nil {
		t.Fatalf("list by %%: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("%% must match nothing, got %d items", len(got))
	}

	got, err = repo.ListByTagForOwner(ctx, owner, "a_c")
	if err != nil {
		t.Fatalf("list by a_c: %v", err)
	}
	if len(got) != 1 || got[0].ID != underscored.ID {
		t.Fatalf("a_c must match only itself, got %d items", len(got))
	}
}

func TestTodoRepository_WindowQueries(t *testing.T) {
	db := connectDB(t)
	repo := repository.NewTodoRepository(db)
	owner := seedUser(t, db)
	ctx := context.Background()
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	insert := func(title string, added, due time.Time, done bool) uuid.UUID {
		t.Helper()
		it := &domain.TodoItem{
			ID: uuid.New(), UserID: owner, Title: title,
			Done: done, Added: added, DueTo: due,
		}
		if err := repo.Insert(ctx, it); err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
		return it.ID
	}

	recentID := insert("added recently", now.Add(-23*time.Hour), time.Time{}, false)
	insert("added long ago", now.Add(-25*time.Hour), time.Time{}, false)
	insert("recent but done", now.Add(-1*time.Hour), time.Time{}, true)
	dueSoonID := insert("due soon", time.Time{}, now.Add(12*time.Hour), false)
	insert("due later", time.Time{}, now.Add(36*time.Hour), false)
	julyID := insert("due in july", time.Time{}, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), false)

	recent, err := repo.ListAddedSince(ctx, owner, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("list added since: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != recentID {
		t.Fatalf("added since: got %d items", len(recent))
	}

	due, err := repo.ListDueBefore(ctx, owner, now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("list due before: %v", err)
	}
	if len(due) != 1 || due[0].ID != dueSoonID {
		t.Fatalf("due before: got %d items", len(due))
	}

	july, err := repo.ListDueInMonth(ctx, owner, 7)
	if err != nil {
		t.Fatalf("list due in month: %v", err)
	}
	if len(july) != 1 || july[0].ID != julyID {
		t.Fatalf("due in month: got %d items", len(july))
	}
}

func TestTodoRepository_OwnershipIsolation(t *testing.T) {
	db := connectDB(t)
	repo := repository.NewTodoRepository(db)
	ownerA := seedUser(t, db)
	ownerB := seedUser(t, db)
	ctx := context.Background()

	it := &domain.TodoItem{ID: uuid.New(), UserID: ownerA, Title: "private task"}
	if err := repo.Insert(ctx, it); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := repo.GetByIDForOwner(ctx, it.ID, ownerB); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-owner get: want ErrNotFound, got %v", err)
	}
	if ok, err := repo.ToggleDone(ctx, it.ID, ownerB); err != nil || ok {
		t.Fatalf("cross-owner toggle: ok=%v err=%v", ok, err)
	}
	if err := repo.Delete(ctx, it.ID, ownerB); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-owner delete: want ErrNotFound, got %v", err)
	}

	// Unscoped lookup still sees it.
	if _, err := repo.GetByID(ctx, it.ID); err != nil {
		t.Fatalf("unscoped get: %v", err)
	}
}

func TestTodoRepository_UpdateToggleSetFile(t *testing.T) {
	db := connectDB(t)
	repo := repository.NewTodoRepository(db)
	owner := seedUser(t, db)
	ctx := context.Background()

	it := &domain.TodoItem{ID: uuid.New(), UserID: owner, Title: "original title"}
	if err := repo.Insert(ctx, it); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if ok, err := repo.UpdateFields(ctx, it.ID, owner, "updated title", "", []string{"new"}); err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.ToggleDone(ctx, it.ID, owner); err != nil || !ok {
		t.Fatalf("toggle: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.SetFile(ctx, it.ID, owner, it.ID.String()+"/a.txt", 5); err != nil || !ok {
		t.Fatalf("set file: ok=%v err=%v", ok, err)
	}

	got, err := repo.GetByID(ctx, it.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "updated title" || !got.Done {
		t.Fatalf("mutations not applied: %+v", got)
	}
	if got.File.Path != it.ID.String()+"/a.txt" || got.File.Size != 5 {
		t.Fatalf("file not set: %+v", got.File)
	}

	if ok, err := repo.UpdateFields(ctx, uuid.New(), owner, "valid title", "", nil); err != nil || ok {
		t.Fatalf("update of missing row: ok=%v err=%v", ok, err)
	}
}

func TestTodoRepository_DeleteRemovesFileRow(t *testing.T) {
	db := connectDB(t)
	repo := repository.NewTodoRepository(db)
	owner := seedUser(t, db)
	ctx := context.Background()

	it := &domain.TodoItem{ID: uuid.New(), UserID: owner, Title: "doomed task"}
	if err := repo.Insert(ctx, it); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.Delete(ctx, it.ID, owner); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, it.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("item should be gone, got %v", err)
	}

	var n int
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM todo_item_files WHERE todo_id = $1`, it.ID).Scan(&n)
	if err != nil {
		t.Fatalf("count file rows: %v", err)
	}
	if n != 0 {
		t.Fatalf("file row survived the delete")
	}

	if err := repo.Delete(ctx, it.ID, owner); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}
