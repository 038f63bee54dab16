package io

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/lexorder/pkg/lexorder"
)

func TestReadWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"trailing newline", "bca\naaa\nacb\n", []string{"bca", "aaa", "acb"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank line is a word", "a\n\nb\n", []string{"a", "", "b"}},
		{"spaces kept", " a\nb \n", []string{" a", "b "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadWords(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadWords() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ReadWords() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImportWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("baa\nabcd\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ImportWords(path)
	if err != nil {
		t.Fatalf("ImportWords() error: %v", err)
	}
	if want := []string{"baa", "abcd"}; !slices.Equal(got, want) {
		t.Errorf("ImportWords() = %q, want %q", got, want)
	}

	if _, err := ImportWords(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ImportWords(missing) error = nil, want error")
	}
}

func testDocument(t *testing.T) *Document {
	t.Helper()
	res, err := lexorder.Infer(context.Background(), []string{"bca", "aaa", "acb"}, lexorder.Options{})
	if err != nil {
		t.Fatalf("Infer() error: %v", err)
	}
	return NewDocument(res)
}

func TestNewDocument(t *testing.T) {
	doc := testDocument(t)

	if want := []string{"b", "a", "c"}; !slices.Equal(doc.Order, want) {
		t.Errorf("Order = %q, want %q", doc.Order, want)
	}
	if want := []string{"b", "c", "a"}; !slices.Equal(doc.Alphabet, want) {
		t.Errorf("Alphabet = %q, want %q", doc.Alphabet, want)
	}
	if want := []Edge{{"b", "a"}, {"a", "c"}}; !slices.Equal(doc.Edges, want) {
		t.Errorf("Edges = %v, want %v", doc.Edges, want)
	}
	if doc.Steps != 2 {
		t.Errorf("Steps = %d, want 2", doc.Steps)
	}
}

func TestWriteOrder(t *testing.T) {
	doc := testDocument(t)

	tests := []struct {
		format string
		want   string
	}{
		{FormatText, "bac\n"},
		{FormatDebug, "['b', 'a', 'c']\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := WriteOrder(&buf, doc, tt.format); err != nil {
			t.Fatalf("WriteOrder(%s) error: %v", tt.format, err)
		}
		if buf.String() != tt.want {
			t.Errorf("WriteOrder(%s) = %q, want %q", tt.format, buf.String(), tt.want)
		}
	}

	if err := WriteOrder(&bytes.Buffer{}, doc, "yaml"); err == nil {
		t.Error("WriteOrder(yaml) error = nil, want error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	doc := testDocument(t)

	var buf bytes.Buffer
	if err := WriteOrder(&buf, doc, FormatJSON); err != nil {
		t.Fatalf("WriteOrder(json) error: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if string(back.Runes()) != "bac" {
		t.Errorf("Runes() = %q, want %q", string(back.Runes()), "bac")
	}
	if len(back.Edges) != 2 {
		t.Errorf("len(Edges) = %d, want 2", len(back.Edges))
	}
}

func TestReadJSONRejectsMultiRuneEntries(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"order": ["ab"]}`)); err == nil {
		t.Error("ReadJSON() error = nil, want error")
	}
}

func TestDebugString(t *testing.T) {
	if got := DebugString(nil); got != "[]" {
		t.Errorf("DebugString(nil) = %q, want []", got)
	}
	if got := DebugString([]rune{'a', '\''}); got != `['a', '\'']` {
		t.Errorf("DebugString() = %q", got)
	}
}
