package analyzer

import (
	"reflect"
	"testing"
)

func TestErrorSpans_ReplaceAndInsert(t *testing.T) {
	got := ErrorSpans("She go to store", "She goes to the store")
	want := []Span{{Original: "go", Corrected: "goes"}, {Original: "", Corrected: "the"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spans = %+v, want %+v", got, want)
	}
}

func TestErrorSpans_Delete(t *testing.T) {
	got := ErrorSpans("I have have a dog", "I have a dog")
	if len(got) != 1 || got[0].Corrected != "" || got[0].Original != "have" {
		t.Fatalf("unexpected spans: %+v", got)
	}
}

func TestErrorSpans_IdenticalTextHasNoSpans(t *testing.T) {
	if got := ErrorSpans("All good here.", "All  good\there."); len(got) != 0 {
		t.Fatalf("expected no spans for whitespace-only differences, got %+v", got)
	}
}

func TestErrorSpans_MultiTokenReplace(t *testing.T) {
	got := ErrorSpans("he dont know nothing", "he doesn't know anything")
	want := []Span{{Original: "dont", Corrected: "doesn't"}, {Original: "nothing", Corrected: "anything"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spans = %+v, want %+v", got, want)
	}
}

func TestErrorSpans_EmptyInputs(t *testing.T) {
	if got := ErrorSpans("", ""); len(got) != 0 {
		t.Fatalf("expected none, got %+v", got)
	}
	got := ErrorSpans("", "Hello there")
	if len(got) != 1 || got[0].Original != "" || got[0].Corrected != "Hello there" {
		t.Fatalf("unexpected spans: %+v", got)
	}
}

func TestClassificationInput(t *testing.T) {
	if got := ClassificationInput("go", "goes"); got != "Original: go | Corrected: goes" {
		t.Fatalf("got %q", got)
	}
}

func TestLabelFor_OutOfRangeIsOther(t *testing.T) {
	labels := DefaultLabels()
	if labelFor(labels, 2) != LabelVerbTense {
		t.Fatalf("id 2 should be %q", LabelVerbTense)
	}
	for _, id := range []int{-1, 5, 99} {
		if got := labelFor(labels, id); got != LabelOther {
			t.Fatalf("labelFor(%d) = %q", id, got)
		}
	}
}

func TestErrorSpans_ASCIISeparatorsSplitWords(t *testing.T) {
	for _, sep := range []string{"\x1c", "\x1d", "\x1e", "\x1f", "\u00a0", "\u2003", "\u3000", "\u0085"} {
		if got := ErrorSpans("a"+sep+"b c", "a b c"); len(got) != 0 {
			t.Fatalf("separator %q: unexpected spans %+v", sep, got)
		}
	}
	// Zero width space is not white space.
	if got := ErrorSpans("a\u200bb c", "a b c"); len(got) != 1 {
		t.Fatalf("zero width space split words: %+v", got)
	}
}
