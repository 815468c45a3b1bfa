package ui

import (
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	if got := truncate("Maximilian", 6); got != "Max..." {
		t.Fatalf("truncate = %q, want Max...", got)
	}
	if got := truncate("  Rex  ", 10); got != "Rex" {
		t.Fatalf("truncate = %q, want Rex", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("http://example.com/pets/rex.png", 11)
	if len([]rune(got)) != 11 {
		t.Fatalf("got %q (%d runes), want 11", got, len([]rune(got)))
	}
	if got != "http:…x.png" {
		t.Fatalf("truncateMiddle = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("a friendly dog who loves walks", 10)
	want := []string{"a friendly", "dog who", "loves", "walks"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapText = %#v, want %#v", got, want)
	}
	if got := wrapText("abcdefghij12", 5); !reflect.DeepEqual(got, []string{"abcde", "fghij", "12"}) {
		t.Fatalf("wrapText long word = %#v", got)
	}
	if wrapText("   ", 5) != nil {
		t.Fatal("wrapText blank should be nil")
	}
}
