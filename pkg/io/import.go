package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes caps a single input line.
const maxLineBytes = 1 << 20

// ReadWords returns the lines of r as words, in order.
//
// Line terminators are stripped; nothing else is. A final line without a
// terminator is still a word, and a trailing terminator does not add an
// empty word. ReadWords does not close r.
func ReadWords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var words []string
	for sc.Scan() {
		words = append(words, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return words, nil
}

// ImportWords reads the word list stored at path.
func ImportWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadWords(f)
}
