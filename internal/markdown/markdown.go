// Package markdown renders converted documents as page-annotated Markdown.
// The default export path of conversion pipelines strips page provenance, so
// rendering walks the document items and embeds a page marker whenever the
// source page changes.
package markdown

import (
	"fmt"
	"strings"
)

// ItemKind discriminates document item variants
type ItemKind int

const (
	KindText ItemKind = iota
	KindHeading
	KindListItem
	KindCode
	KindFormula
	KindPicture
	KindTable
)

// Item is one element of a converted document. Only the fields relevant to
// the item's kind are populated. Page 0 means no page provenance.
type Item struct {
	Kind     ItemKind
	Page     int
	Text     string
	Level    int        // heading level
	Marker   string     // list item marker, defaults to "-"
	Language string     // code fence language
	Caption  string     // picture caption, defaults to "Image"
	Grid     [][]string // table cells, first row is the header
}

// Document is the converted form handed to Render
type Document struct {
	Items     []Item
	PageCount int
}

// Render generates Markdown with embedded page number annotations
func Render(doc Document) string {
	var parts []string
	currentPage := 0

	for _, item := range doc.Items {
		if item.Page > 0 && item.Page != currentPage {
			currentPage = item.Page
			parts = append(parts, fmt.Sprintf("\n<!-- PAGE: %d -->\n", item.Page))
			parts = append(parts, fmt.Sprintf("<span data-page=\"%d\"></span>\n", item.Page))
		}

		if md := itemToMarkdown(item); md != "" {
			parts = append(parts, md)
		}
	}

	return strings.Join(parts, "\n")
}

func itemToMarkdown(item Item) string {
	switch item.Kind {
	case KindText:
		return item.Text + "\n"

	case KindHeading:
		level := item.Level
		if level < 1 {
			level = 1
		}
		return fmt.Sprintf("%s %s\n", strings.Repeat("#", level), item.Text)

	case KindListItem:
		marker := item.Marker
		if marker == "" {
			marker = "-"
		}
		return fmt.Sprintf("%s %s\n", marker, item.Text)

	case KindCode:
		return fmt.Sprintf("```%s\n%s\n```\n", item.Language, item.Text)

	case KindFormula:
		return fmt.Sprintf("$$\n%s\n$$\n", item.Text)

	case KindPicture:
		caption := item.Caption
		if caption == "" {
			caption = "Image"
		}
		return fmt.Sprintf("![%s]()\n", caption)

	case KindTable:
		return tableToMarkdown(item.Grid)
	}

	return ""
}

func tableToMarkdown(grid [][]string) string {
	if len(grid) == 0 {
		return ""
	}

	var lines []string

	header := grid[0]
	lines = append(lines, "| "+strings.Join(header, " | ")+" |")

	separators := make([]string, len(header))
	for i := range separators {
		separators[i] = "---"
	}
	lines = append(lines, "| "+strings.Join(separators, " | ")+" |")

	for _, row := range grid[1:] {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}

	return strings.Join(lines, "\n") + "\n"
}
