package domain

import "github.com/google/uuid"

// TodoItemFile is the single file attached to a todo item. It shares its
// identity with the owning item (one row per item, created and deleted
// together with it).
type TodoItemFile struct {
	TodoID uuid.UUID `db:"todo_id"`
	Path   string    `db:"path"`
	Size   int64     `db:"size"`
}
