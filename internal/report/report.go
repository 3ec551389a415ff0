// Package report renders a projection as a Markdown summary and as HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"prodstats/domain/chart"
	"prodstats/domain/product"

	"github.com/dustin/go-humanize"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// DefaultMaxRows caps the points table.
const DefaultMaxRows = 100

// Source describes where the data came from. Zero values are omitted.
type Source struct {
	FileName   string
	Records    int
	UploadedAt time.Time
}

// Options tunes report output
type Options struct {
	MaxRows int
}

// Markdown renders proj as a Markdown document.
func Markdown(proj chart.Projection, src Source, opts Options) []byte {
	if opts.MaxRows <= 0 {
		opts.MaxRows = DefaultMaxRows
	}

	var b bytes.Buffer
	b.WriteString("# Product Statistics\n\n")

	if src.FileName != "" {
		fmt.Fprintf(&b, "Source: `%s`, %s records", src.FileName, humanize.Comma(int64(src.Records)))
		if !src.UploadedAt.IsZero() {
			fmt.Fprintf(&b, ", uploaded %s", src.UploadedAt.Format(time.RFC1123))
		}
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "## %s (%s chart)\n\n", label(proj.Axes.X)+" vs "+label(proj.Axes.Y), proj.Axes.Type)

	if proj.Empty() {
		reason := proj.Reason
		if reason == chart.ReasonNone {
			reason = chart.ReasonNoData
		}
		fmt.Fprintf(&b, "> **Error:** %s\n", reason)
		return b.Bytes()
	}

	if s := proj.Stats; s != nil {
		b.WriteString("| Total | Average | Maximum | Minimum | Count | Median | Std dev |\n")
		b.WriteString("|---:|---:|---:|---:|---:|---:|---:|\n")
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n\n",
			number(s.Total, 3), number(s.Avg, 2), number(s.Max, 3), number(s.Min, 3),
			humanize.Comma(int64(s.Count)), number(s.Median, 2), number(s.StdDev, 2))
	}

	b.WriteString("### Points\n\n")
	fmt.Fprintf(&b, "| # | %s | %s | Link |\n", label(proj.Axes.X), label(proj.Axes.Y))
	b.WriteString("|---:|---|---:|---|\n")
	for i, p := range proj.Points {
		if i == opts.MaxRows {
			fmt.Fprintf(&b, "\n_%s more points not shown._\n", humanize.Comma(int64(len(proj.Points)-i)))
			break
		}
		link := ""
		if p.Link != "" {
			link = fmt.Sprintf("[open](%s)", p.Link)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, escapeCell(p.Category), number(p.Value, 3), link)
	}
	return b.Bytes()
}

// HTML renders the Markdown report to an HTML fragment.
func HTML(proj chart.Projection, src Source, opts Options) []byte {
	return ToHTML(Markdown(proj, src, opts))
}

// ToHTML converts Markdown to HTML with tables enabled. Raw HTML in the
// input is dropped and only safe link schemes are kept.
func ToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink})
	return markdown.Render(doc, renderer)
}

func label(f product.Field) string {
	if fi, ok := product.Lookup(f); ok {
		return fi.Label
	}
	return string(f)
}

func number(v float64, decimals int) string {
	return humanize.CommafWithDigits(v, decimals)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
