// Package pkg provides the libraries behind lexorder, which infers the
// alphabet order of a word list sorted under an unknown alphabet.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Kernel - [alphabet], [precedence], [matrix], [rank] and the [lexorder]
//     orchestrator that chains them
//  2. Infrastructure - [cache], [config], [observability], [errors] and [io]
//  3. Orchestration - [pipeline], shared by the CLI and the HTTP server,
//     and [render/nodelink] for precedence graph diagrams
//
// # Architecture
//
// The data flow of one inference:
//
//	sorted words
//	     ↓
//	[alphabet] dense character indices, first-seen order
//	     ↓
//	[precedence] adjacency matrix from adjacent word pairs
//	     ↓
//	[matrix] longest-path closure by max-plus squaring
//	     ↓
//	[rank] rank = dim - longest chain - 1
//	     ↓
//	ordered characters
//
// # Quick Start
//
//	order, err := lexorder.Order(ctx, []string{"bca", "aaa", "acb"}, lexorder.Options{})
//	// order == []rune{'b', 'a', 'c'}
//
// [alphabet]: github.com/matzehuels/lexorder/pkg/alphabet
// [precedence]: github.com/matzehuels/lexorder/pkg/precedence
// [matrix]: github.com/matzehuels/lexorder/pkg/matrix
// [rank]: github.com/matzehuels/lexorder/pkg/rank
// [lexorder]: github.com/matzehuels/lexorder/pkg/lexorder
// [cache]: github.com/matzehuels/lexorder/pkg/cache
// [config]: github.com/matzehuels/lexorder/pkg/config
// [observability]: github.com/matzehuels/lexorder/pkg/observability
// [errors]: github.com/matzehuels/lexorder/pkg/errors
// [io]: github.com/matzehuels/lexorder/pkg/io
// [pipeline]: github.com/matzehuels/lexorder/pkg/pipeline
// [render/nodelink]: github.com/matzehuels/lexorder/pkg/render/nodelink
package pkg
