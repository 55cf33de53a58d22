package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		in        string
		maxLength int
		want      string
	}{
		{"punctuation and runs", "Hello, World!!  Test", 50, "hello-world-test"},
		{"empty", "", 50, ""},
		{"only punctuation", "!!!???", 50, ""},
		{"underscores collapse", "foo__bar_baz", 50, "foo-bar-baz"},
		{"leading and trailing noise", "  --Deep Work-- ", 50, "deep-work"},
		{"preserves hyphens", "well-known idea", 50, "well-known-idea"},
		{"mixed whitespace", "one\ttwo\nthree", 50, "one-two-three"},
		{"truncation re-trims hyphen", "aaaa bbbb", 5, "aaaa"},
		{"exact max length", "abcde", 5, "abcde"},
		{"non-ascii stripped", "café über", 50, "caf-ber"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Slugify(tc.in, tc.maxLength); got != tc.want {
				t.Errorf("Slugify(%q, %d) = %q, want %q", tc.in, tc.maxLength, got, tc.want)
			}
		})
	}
}

func TestSlugify_TruncatesToMaxLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 30)
	got := Slugify(long, 50)
	if len(got) > 50 {
		t.Errorf("slug length = %d, want <= 50", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q has trailing hyphen after truncation", got)
	}
}

func TestSlugPrefix(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	if got := SlugPrefix(id); got != "123e456" {
		t.Errorf("SlugPrefix = %q, want %q", got, "123e456")
	}
}

func TestBuildSlug(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")

	if got := BuildSlug(id, "Hello, World!!  Test"); got != "123e456/hello-world-test" {
		t.Errorf("BuildSlug = %q", got)
	}

	// Empty content falls back to the literal token.
	if got := BuildSlug(id, "???"); got != "123e456/seed" {
		t.Errorf("BuildSlug fallback = %q, want %q", got, "123e456/seed")
	}

	// Content is cut to 50 characters before slugifying.
	long := strings.Repeat("a", 120)
	got := BuildSlug(id, long)
	if want := "123e456/" + strings.Repeat("a", 50); got != want {
		t.Errorf("BuildSlug long = %q, want %q", got, want)
	}
}
