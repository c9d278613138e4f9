package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubmissionInput_Normalize(t *testing.T) {
	in := SubmissionInput{
		Name:     "  Jane Doe ",
		Email:    " JANE@Example.com\t",
		Message:  "\nHello\n",
		Honeypot: "   ",
	}
	in.Normalize()

	want := SubmissionInput{Name: "Jane Doe", Email: "jane@example.com", Message: "Hello"}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionInput_NormalizeLineBreaks(t *testing.T) {
	in := SubmissionInput{
		Name:    "Jane\r",
		Email:   "jane@example.com",
		Message: "line1\r\nline2\rline3\nline4\r\n",
	}
	in.Normalize()

	if in.Message != "line1\nline2\nline3\nline4" {
		t.Errorf("Message = %q", in.Message)
	}
	if in.Name != "Jane" {
		t.Errorf("Name = %q", in.Name)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"plain":    "plain",
		"a\r\nb":   "a\nb",
		"a\rb":     "a\nb",
		"a\r\r\nb": "a\n\nb",
		"a\nb":     "a\nb",
	}
	for in, want := range cases {
		if got := NormalizeNewlines(in); got != want {
			t.Errorf("NormalizeNewlines(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSubmission_FieldsFollowColumnOrder(t *testing.T) {
	s := &Submission{Timestamp: "2024-01-02 03:04:05", Name: "n", Email: "e@x.io", Message: "m"}
	got := s.Fields()
	if len(got) != len(Columns) {
		t.Fatalf("expected %d fields, got %d", len(Columns), len(got))
	}
	want := []string{"2024-01-02 03:04:05", "n", "e@x.io", "m"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}
