package filetext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings are
// flattened to their own lines so numbered clause headings survive as
// lines the clause splitter can match.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		var t string
		if h, ok := n.(*ast.Heading); ok {
			t = string(h.Text(src))
		} else {
			t = blockText(n, src)
		}
		if t != "" {
			blocks = append(blocks, t)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// blockText collects the raw source lines of a block node, recursing
// through container blocks like lists and quotes. Leaf blocks carry
// their own lines, so inline nodes never need visiting.
func blockText(n ast.Node, src []byte) string {
	if l, ok := n.(*ast.List); ok {
		return listText(l, src)
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}

	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// listText restores ordered-list markers. Contracts number their
// clauses, and goldmark's item lines start after the "1. " marker, so
// dropping it would lose the clause numbering.
func listText(l *ast.List, src []byte) string {
	var parts []string
	num := l.Start
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		t := blockText(c, src)
		if t == "" {
			continue
		}
		if l.IsOrdered() {
			t = fmt.Sprintf("%d. %s", num, t)
			num++
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, "\n")
}
