package domain

import "time"

// Timestamps live two lives: in memory they are absolute instants
// (time.Time, zero value meaning "never set"), in the database they are
// nullable UTC civil values. These two functions are the only place the
// representations meet.

// ToNullable converts an instant to its stored form. The zero-time
// sentinel maps to NULL; anything else is normalized to UTC.
func ToNullable(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

// FromNullable converts a stored value back to an instant. NULL maps to
// the zero-time sentinel; stored values are interpreted as UTC.
func FromNullable(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
