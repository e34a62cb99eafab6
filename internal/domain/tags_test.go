package domain

import (
	"reflect"
	"testing"
)

func TestTagsRoundTrip(t *testing.T) {
	tags := []string{"errand", "home", "very important"}

	got := SplitTags(JoinTags(tags))
	if !reflect.DeepEqual(got, tags) {
		t.Fatalf("round trip changed tags: got %v, want %v", got, tags)
	}
}

func TestSplitTagsDiscardsEmptySegments(t *testing.T) {
	got := SplitTags(",a,,b,")
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitTagsEmpty(t *testing.T) {
	if got := SplitTags(""); got != nil {
		t.Fatalf("expected nil for empty column, got %v", got)
	}
	if got := SplitTags(",,"); got != nil {
		t.Fatalf("expected nil for all-empty segments, got %v", got)
	}
}
