package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/lexorder"
)

// Output formats accepted by [WriteOrder].
const (
	FormatText  = "text"
	FormatDebug = "debug"
	FormatJSON  = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatDebug, FormatJSON}

// Document is the JSON form of an inference result.
type Document struct {
	Order    []string `json:"order"`
	Alphabet []string `json:"alphabet,omitempty"`
	Edges    []Edge   `json:"edges,omitempty"`
	Steps    int      `json:"steps,omitempty"`
}

// Edge is one precedence edge between two characters.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NewDocument converts a successful result into its JSON form.
func NewDocument(res *lexorder.Result) *Document {
	doc := &Document{
		Order:    runeStrings(res.Order),
		Alphabet: runeStrings(res.Alphabet),
		Steps:    res.Steps,
	}
	for _, e := range res.Edges() {
		doc.Edges = append(doc.Edges, Edge{
			From: string(res.Alphabet.Rune(e.From)),
			To:   string(res.Alphabet.Rune(e.To)),
		})
	}
	return doc
}

// Runes returns the order as characters.
func (d *Document) Runes() []rune {
	out := make([]rune, 0, len(d.Order))
	for _, s := range d.Order {
		r, _ := utf8.DecodeRuneInString(s)
		out = append(out, r)
	}
	return out
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a document written by [WriteJSON].
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i, s := range doc.Order {
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("order[%d]: %q is not a single character", i, s)
		}
	}
	return &doc, nil
}

// WriteOrder writes doc to w in the given format.
func WriteOrder(w io.Writer, doc *Document, format string) error {
	if err := errors.ValidateFormat(format, Formats...); err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		return WriteJSON(doc, w)
	case FormatDebug:
		_, err := fmt.Fprintln(w, DebugString(doc.Runes()))
		return err
	default:
		_, err := fmt.Fprintln(w, string(doc.Runes()))
		return err
	}
}

// ExportOrder writes doc to the file at path.
func ExportOrder(doc *Document, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteOrder(f, doc, format)
}

// DebugString formats runes as a bracketed list of quoted characters,
// e.g. ['b', 'a', 'c'].
func DebugString(runes []rune) string {
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = fmt.Sprintf("%q", r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func runeStrings(runes []rune) []string {
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
