package nodelink

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/lexorder"
)

// Options configures precedence graph rendering.
type Options struct {
	// Detailed adds the dense alphabet index and the longest outgoing
	// chain to each node label.
	Detailed bool

	// Failure is the inference error, if any. Characters named by a
	// cycle or rank collision are highlighted.
	Failure error
}

// ToDOT converts an inference result to Graphviz DOT.
//
// Nodes appear in first-seen alphabet order. When the result carries a
// complete order, each label shows the character's rank and the graph is
// laid out left to right in that order.
func ToDOT(res *lexorder.Result, opts Options) string {
	ranks := rankOf(res)
	marked := failedIndices(opts.Failure)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=20];\n")
	buf.WriteString("\n")

	for i, r := range res.Alphabet {
		label := fmtLabel(res, i, r, ranks, opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if marked[i] {
			attrs = append(attrs, "fillcolor=\"#f4b6b6\"", "color=\"#c0392b\"")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range res.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(e.From), nodeID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string {
	return "c" + strconv.Itoa(i)
}

func fmtLabel(res *lexorder.Result, i int, r rune, ranks map[int]int, detailed bool) string {
	label := string(r)
	if rk, ok := ranks[i]; ok {
		label += fmt.Sprintf("\nrank %d", rk)
	}
	if detailed {
		label += fmt.Sprintf("\nindex %d", i)
		if res.Closure != nil {
			label += fmt.Sprintf("\nchain %d", res.Closure.RowMax(i))
		}
	}
	return label
}

// rankOf maps character index to rank for a successful result.
func rankOf(res *lexorder.Result) map[int]int {
	out := make(map[int]int, len(res.Ranks))
	for rk, idx := range res.Ranks {
		out[idx] = rk
	}
	return out
}

func failedIndices(err error) map[int]bool {
	out := make(map[int]bool)
	var cycle *errors.CycleError
	if stderrors.As(err, &cycle) {
		out[cycle.Index] = true
	}
	var coll *errors.RankCollisionError
	if stderrors.As(err, &coll) {
		out[coll.Index] = true
		out[coll.Existing] = true
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales from its origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
