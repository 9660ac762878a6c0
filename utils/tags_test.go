package utils

import (
	"reflect"
	"testing"
)

func TestJoinTagsDropsBlanks(t *testing.T) {
	got := JoinTags([]string{" folk ", "", "bengali", "  "})
	if got != "folk,bengali" {
		t.Fatalf("unexpected join: %q", got)
	}
}

func TestSplitTagsRoundTrip(t *testing.T) {
	got := SplitTags("folk, bengali ,,horror")
	want := []string{"folk", "bengali", "horror"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitTagsEmptyIsNotNil(t *testing.T) {
	got := SplitTags("")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}
