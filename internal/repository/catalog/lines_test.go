package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestReadLines_SkipsOversized(t *testing.T) {
	in := "short\n" + strings.Repeat("x", 40) + "\nok\r\nlast"

	var got []string
	oversized, err := ReadLines(strings.NewReader(in), 16, func(line []byte) error {
		got = append(got, string(line))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oversized != 1 {
		t.Errorf("expected 1 oversized line, got %d", oversized)
	}
	want := []string{"short", "ok", "last"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func TestReadLines_LimitIsInclusive(t *testing.T) {
	var n int
	oversized, err := ReadLines(strings.NewReader("abcd\nabcde\n"), 4, func([]byte) error {
		n++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || oversized != 1 {
		t.Errorf("got %d lines, %d oversized; want 1 and 1", n, oversized)
	}
}

func TestReadLines_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	var n int
	_, err := ReadLines(strings.NewReader("a\nb\nc\n"), 16, func([]byte) error {
		n++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 call, got %d", n)
	}
}
