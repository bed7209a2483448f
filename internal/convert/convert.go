// Package convert renders markdown documents into HTML articles and extracts
// their display titles.
package convert

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

const (
	articleOpen  = "<article class=\"doc-article\">\n"
	articleClose = "\n</article>\n"
)

// Document is the result of converting one markdown source.
type Document struct {
	Title string
	HTML  []byte // complete article markup
	Text  string // plain text, used for search indexing
	Draft bool
}

// frontMatter holds the optional YAML header of a document.
type frontMatter struct {
	Title string `yaml:"title"`
	Draft bool   `yaml:"draft"`
}

// Converter turns GitHub-flavoured markdown into article HTML.
type Converter struct {
	markdown goldmark.Markdown
}

// New creates a Converter with GFM extensions, generated heading IDs and raw
// HTML passthrough.
func New() *Converter {
	return &Converter{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Convert renders src. fallbackTitle is used when neither front matter nor a
// level-one heading provides a title.
func (c *Converter) Convert(src []byte, fallbackTitle string) (*Document, error) {
	body, header := extractFrontMatter(src)

	var fm frontMatter
	if header != nil {
		if err := yaml.Unmarshal(header, &fm); err != nil {
			return nil, fmt.Errorf("failed to parse front matter: %w", err)
		}
	}

	doc := c.markdown.Parser().Parse(text.NewReader(body))

	var rendered bytes.Buffer
	rendered.WriteString(articleOpen)
	if err := c.markdown.Renderer().Render(&rendered, body, doc); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	rendered.WriteString(articleClose)

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = firstHeading(doc, body)
	}
	if title == "" {
		title = fallbackTitle
	}

	return &Document{
		Title: title,
		HTML:  rendered.Bytes(),
		Text:  plainText(doc, body),
		Draft: fm.Draft,
	}, nil
}

// firstHeading returns the text of the first level-one heading, ATX or
// setext, with inline markup flattened.
func firstHeading(doc ast.Node, source []byte) string {
	var title string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 {
			title = strings.TrimSpace(inlineText(heading, source))
			if title != "" {
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

// inlineText concatenates the text of n's inline descendants.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// plainText flattens the document into newline-separated text blocks.
func plainText(doc ast.Node, source []byte) string {
	var parts []string
	collectText(doc, source, &parts)
	return strings.Join(parts, "\n")
}

func collectText(n ast.Node, source []byte, parts *[]string) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var s string
		switch {
		case hasInlineChildren(c):
			s = inlineText(c, source)
		case c.Lines().Len() > 0:
			// code and raw HTML blocks keep their source lines
			var buf bytes.Buffer
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
			}
			s = buf.String()
		default:
			collectText(c, source, parts)
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			*parts = append(*parts, s)
		}
	}
}

func hasInlineChildren(n ast.Node) bool {
	first := n.FirstChild()
	return first != nil && first.Type() == ast.TypeInline
}

// extractFrontMatter splits a leading "---" delimited YAML header from content.
func extractFrontMatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, nil
	}
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			return bytes.Join(lines[i+1:], []byte("\n")), bytes.Join(lines[1:i], []byte("\n"))
		}
	}
	return content, nil
}

var numberPrefix = regexp.MustCompile(`^\d+_`)

// DisplayName turns a filename into a readable label: the numeric prefix and
// ".html" suffix are dropped and underscores become spaces.
func DisplayName(name string) string {
	name = strings.TrimSuffix(name, ".html")
	name = numberPrefix.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}
