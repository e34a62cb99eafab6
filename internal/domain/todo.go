package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	TitleMinLen   = 3
	TitleMaxLen   = 50
	ContentMinLen = 15
	ContentMaxLen = 200

	// MaxTags bounds how many tags a single item may carry.
	MaxTags = 10
)

// TodoItem is a single task owned by one user. Added and DueTo are absolute
// instants; the zero time is the "never set" sentinel and maps to NULL in
// the database (see timestamp.go).
type TodoItem struct {
	ID      uuid.UUID `db:"id"`
	UserID  int64     `db:"user_id"`
	Title   string    `db:"title"`
	Content string    `db:"content"`
	Done    bool      `db:"done"`
	Added   time.Time `db:"added"`
	DueTo   time.Time `db:"due_to"`
	Tags    []string  `db:"tags"`

	// File exists for the whole lifetime of the item, never nil in the
	// database sense: an empty Path and zero Size mean "nothing uploaded".
	File TodoItemFile
}

// Validate checks the field constraints enforced at create/update time.
// It returns a *ValidationError describing the first violation found.
func (t *TodoItem) Validate() error {
	if n := utf8.RuneCountInString(t.Title); n < TitleMinLen || n > TitleMaxLen {
		return &ValidationError{
			Field:  "title",
			Reason: fmt.Sprintf("must be %d-%d characters", TitleMinLen, TitleMaxLen),
		}
	}
	if t.Content != "" {
		if n := utf8.RuneCountInString(t.Content); n < ContentMinLen || n > ContentMaxLen {
			return &ValidationError{
				Field:  "content",
				Reason: fmt.Sprintf("must be %d-%d characters when present", ContentMinLen, ContentMaxLen),
			}
		}
	}
	if len(t.Tags) > MaxTags {
		return &ValidationError{
			Field:  "tags",
			Reason: fmt.Sprintf("at most %d tags", MaxTags),
		}
	}
	for _, tag := range t.Tags {
		if tag == "" {
			return &ValidationError{Field: "tags", Reason: "tags must be non-empty"}
		}
		// Tags are stored comma-joined; a comma inside a tag would not
		// survive the round trip.
		if strings.Contains(tag, ",") {
			return &ValidationError{Field: "tags", Reason: "tags must not contain commas"}
		}
	}
	return nil
}

// HasTag reports whether the item carries an exact match for tag.
func (t *TodoItem) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}
