package repository

import (
	"context"
	"errors"
	"time"

	"todolist_backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Every query joins the one-to-one file row so items always come back with
// their attachment populated.
const todoColumns = `t.id, t.user_id, t.title, t.content, t.done, t.added, t.due_to, t.tags, f.path, f.size`
const todoFrom = ` FROM todo_items t JOIN todo_item_files f ON f.todo_id = t.id`

type TodoRepository struct {
	db *pgxpool.Pool
}

func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{db: db}
}

// Insert persists a new item together with its (empty) file row in one
// transaction.
func (r *TodoRepository) Insert(ctx context.Context, it *domain.TodoItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Op: "begin insert todo", Err: err}
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO todo_items (id, user_id, title, content, done, added, due_to, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.UserID, it.Title, it.Content, it.Done,
		domain.ToNullable(it.Added), domain.ToNullable(it.DueTo), domain.JoinTags(it.Tags),
	)
	if err != nil {
		return &domain.StorageError{Op: "insert todo", Err: err}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO todo_item_files (todo_id, path, size) VALUES ($1, $2, $3)`,
		it.ID, it.File.Path, it.File.Size,
	)
	if err != nil {
		return &domain.StorageError{Op: "insert todo file", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Op: "commit insert todo", Err: err}
	}
	return nil
}

// GetByID fetches an item by id only, without owner filtering. Mutating
// operations all filter by owner; use GetByIDForOwner when the caller's
// identity must be checked.
func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TodoItem, error) {
	row := r.db.QueryRow(ctx, `SELECT `+todoColumns+todoFrom+` WHERE t.id = $1`, id)
	return scanTodo(row)
}

func (r *TodoRepository) GetByIDForOwner(ctx context.Context, id uuid.UUID, owner int64) (*domain.TodoItem, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+todoColumns+todoFrom+` WHERE t.id = $1 AND t.user_id = $2`, id, owner)
	return scanTodo(row)
}

// ListByOwner returns the owner's items filtered by completion state.
func (r *TodoRepository) ListByOwner(ctx context.Context, owner int64, done bool) ([]*domain.TodoItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+todoFrom+` WHERE t.user_id = $1 AND t.done = $2`, owner, done)
	if err != nil {
		return nil, &domain.StorageError{Op: "list todos", Err: err}
	}
	defer rows.Close()

	return scanTodos(rows)
}

// ListByTag returns items carrying an exact tag match, across all owners.
// Matching splits the stored column so the tag is compared as a whole
// segment, never as a pattern.
func (r *TodoRepository) ListByTag(ctx context.Context, tag string) ([]*domain.TodoItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+todoFrom+` WHERE $1 = ANY(string_to_array(t.tags, ','))`, tag)
	if err != nil {
		return nil, &domain.StorageError{Op: "list todos by tag", Err: err}
	}
	defer rows.Close()

	return scanTodos(rows)
}

func (r *TodoRepository) ListByTagForOwner(ctx context.Context, owner int64, tag string) ([]*domain.TodoItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+todoFrom+`
		 WHERE t.user_id = $1 AND $2 = ANY(string_to_array(t.tags, ','))`, owner, tag)
	if err != nil {
		return nil, &domain.StorageError{Op: "list todos by tag", Err: err}
	}
	defer rows.Close()

	return scanTodos(rows)
}

// ListAddedSince returns the owner's incomplete items added at or after
// the given instant. Items whose added column is NULL never match.
func (r *TodoRepository) ListAddedSince(ctx context.Context, owner int64, since time.Time) ([]*domain.TodoItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+todoFrom+`
		 WHERE t.user_id = $1 AND NOT t.done AND t.added >= $2`,
		owner, since.UTC())
	if err != nil {
		return nil, &domain.StorageError{Op: "list recently added todos", Err: err}
	}
	defer rows.Close()

	return scanTodos(rows)
}

// ListDueBefore returns the owner's incomplete items with a due date at or
// before the given instant. Items without a due date never match.
func (r *TodoRepository) ListDueBefore(ctx context.Context, owner int64, before time.Time) ([]*domain.TodoItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+todoFrom+`
		 WHERE t.user_id = $1 AND NOT t.done AND t.due_to <= $2`,
		owner, before.UTC())
	if err != nil {
		return nil, &domain.StorageError{Op: "list due todos", Err: err}
	}
	defer rows.Close()

	return scanTodos(rows)
}

// ListDueInMonth returns the owner's incomplete items whose due date falls
// in the given civil month (1-12), regardless of year.
func (r *TodoRepository) ListDueInMonth(ctx context.Context, owner int64, month int) ([]*domain.TodoItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+todoFrom+`
		 WHERE t.user_id = $1 AND NOT t.done
		   AND t.due_to IS NOT NULL AND EXTRACT(MONTH FROM t.due_to) = $2`,
		owner, month)
	if err != nil {
		return nil, &domain.StorageError{Op: "list monthly todos", Err: err}
	}
	defer rows.Close()

	return scanTodos(rows)
}

// UpdateFields overwrites title, content and tags of the owner's item.
// Returns false when no row matched (id, owner).
func (r *TodoRepository) UpdateFields(ctx context.Context, id uuid.UUID, owner int64, title, content string, tags []string) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE todo_items SET title = $3, content = $4, tags = $5
		 WHERE id = $1 AND user_id = $2`,
		id, owner, title, content, domain.JoinTags(tags))
	if err != nil {
		return false, &domain.StorageError{Op: "update todo", Err: err}
	}
	return ct.RowsAffected() == 1, nil
}

// ToggleDone flips the completion flag. Returns false when no row matched.
func (r *TodoRepository) ToggleDone(ctx context.Context, id uuid.UUID, owner int64) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE todo_items SET done = NOT done WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return false, &domain.StorageError{Op: "toggle todo", Err: err}
	}
	return ct.RowsAffected() == 1, nil
}

// Delete removes the item and its file row in one transaction. A missing
// (id, owner) match yields domain.ErrNotFound.
func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID, owner int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Op: "begin delete todo", Err: err}
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM todo_item_files
		 WHERE todo_id IN (SELECT id FROM todo_items WHERE id = $1 AND user_id = $2)`,
		id, owner)
	if err != nil {
		return &domain.StorageError{Op: "delete todo file", Err: err}
	}

	ct, err := tx.Exec(ctx,
		`DELETE FROM todo_items WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return &domain.StorageError{Op: "delete todo", Err: err}
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Op: "commit delete todo", Err: err}
	}
	return nil
}

// SetFile overwrites the attachment's path and size in place. Returns
// false when no item matched (id, owner).
func (r *TodoRepository) SetFile(ctx context.Context, id uuid.UUID, owner int64, path string, size int64) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE todo_item_files f SET path = $3, size = $4
		 FROM todo_items t
		 WHERE f.todo_id = t.id AND t.id = $1 AND t.user_id = $2`,
		id, owner, path, size)
	if err != nil {
		return false, &domain.StorageError{Op: "set todo file", Err: err}
	}
	return ct.RowsAffected() == 1, nil
}

func scanTodo(row pgx.Row) (*domain.TodoItem, error) {
	var it domain.TodoItem
	var added, due *time.Time
	var tags string

	err := row.Scan(&it.ID, &it.UserID, &it.Title, &it.Content, &it.Done,
		&added, &due, &tags, &it.File.Path, &it.File.Size)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StorageError{Op: "scan todo", Err: err}
	}

	it.Added = domain.FromNullable(added)
	it.DueTo = domain.FromNullable(due)
	it.Tags = domain.SplitTags(tags)
	it.File.TodoID = it.ID
	return &it, nil
}

func scanTodos(rows pgx.Rows) ([]*domain.TodoItem, error) {
	var res []*domain.TodoItem
	for rows.Next() {
		it, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, it)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "iterate todos", Err: err}
	}
	return res, nil
}
