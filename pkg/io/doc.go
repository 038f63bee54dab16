// Package io reads word lists and writes inferred orders.
//
// # Input
//
// Word lists are plain text with one word per line, exactly as they are
// sorted. Lines are taken verbatim apart from the line terminator ("\n" or
// "\r\n"): leading and trailing spaces are characters like any other, and an
// empty line is an empty word. Use [ImportWords] for a file path or
// [ReadWords] for any io.Reader.
//
// # Output Formats
//
// [WriteOrder] supports three formats:
//
//   - text: the characters joined into a single line, e.g. "bac"
//   - debug: a bracketed list of quoted characters, e.g. ['b', 'a', 'c']
//   - json: a [Document] with the order, alphabet and precedence edges
//
// # JSON Format
//
//	{
//	  "order": ["b", "a", "c"],
//	  "alphabet": ["b", "c", "a"],
//	  "edges": [
//	    {"from": "b", "to": "a"},
//	    {"from": "a", "to": "c"}
//	  ],
//	  "steps": 2
//	}
//
// Characters are encoded as one-rune strings. [ReadJSON] decodes the same
// shape, which is how cached results are restored.
package io
