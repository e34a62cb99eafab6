package domain

import (
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	instants := []time.Time{
		time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 12, 30, 0, 500, loc),
		time.Unix(0, 1),
	}

	for _, i := range instants {
		got := FromNullable(ToNullable(i))
		if !got.Equal(i) {
			t.Fatalf("round trip changed instant: got %v, want %v", got, i)
		}
	}
}

func TestTimestampSentinelRoundTrip(t *testing.T) {
	// The zero instant means "never set": it must map to NULL and back
	// without error or drift.
	p := ToNullable(time.Time{})
	if p != nil {
		t.Fatalf("expected nil for sentinel, got %v", *p)
	}
	if got := FromNullable(nil); !got.IsZero() {
		t.Fatalf("expected zero instant for NULL, got %v", got)
	}
}

func TestToNullableNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	i := time.Date(2024, 6, 15, 10, 0, 0, 0, loc)

	p := ToNullable(i)
	if p == nil {
		t.Fatal("expected non-nil")
	}
	if p.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", p.Location())
	}
	if !p.Equal(i) {
		t.Fatalf("conversion changed the instant: %v != %v", p, i)
	}
}
