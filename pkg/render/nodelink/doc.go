// Package nodelink renders the precedence graph of a word list as a
// node-link diagram.
//
// Each character becomes a node and each direct precedence edge an arrow.
// When inference succeeded the node labels carry the inferred rank; when
// it failed the characters named by the error are highlighted.
//
//	res, err := lexorder.Infer(ctx, words, lexorder.Options{})
//	dot := nodelink.ToDOT(res, nodelink.Options{Failure: err})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [RenderSVG] uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process; no external binaries are needed.
package nodelink
