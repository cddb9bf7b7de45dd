package markdown

import (
	"strings"
	"testing"
)

func TestRenderPageMarkers(t *testing.T) {
	doc := Document{
		PageCount: 2,
		Items: []Item{
			{Kind: KindHeading, Page: 1, Level: 1, Text: "Title"},
			{Kind: KindText, Page: 1, Text: "First page body"},
			{Kind: KindText, Page: 2, Text: "Second page body"},
		},
	}

	md := Render(doc)

	if !strings.Contains(md, "<!-- PAGE: 1 -->") {
		t.Error("missing page 1 comment marker")
	}
	if !strings.Contains(md, `<span data-page="1"></span>`) {
		t.Error("missing page 1 span marker")
	}
	if !strings.Contains(md, "<!-- PAGE: 2 -->") {
		t.Error("missing page 2 comment marker")
	}
	if !strings.Contains(md, `<span data-page="2"></span>`) {
		t.Error("missing page 2 span marker")
	}
	if strings.Count(md, "<!-- PAGE: 1 -->") != 1 {
		t.Error("page 1 marker should appear once, only on page change")
	}

	// Content order: page 1 marker before page 1 text before page 2 marker
	p1 := strings.Index(md, "<!-- PAGE: 1 -->")
	body := strings.Index(md, "First page body")
	p2 := strings.Index(md, "<!-- PAGE: 2 -->")
	if !(p1 < body && body < p2) {
		t.Errorf("markers out of order: p1=%d body=%d p2=%d", p1, body, p2)
	}
}

func TestRenderItems(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected string
	}{
		{"text", Item{Kind: KindText, Text: "hello"}, "hello\n"},
		{"heading level 2", Item{Kind: KindHeading, Level: 2, Text: "Section"}, "## Section\n"},
		{"heading level 0 clamps to 1", Item{Kind: KindHeading, Level: 0, Text: "Top"}, "# Top\n"},
		{"list item default marker", Item{Kind: KindListItem, Text: "entry"}, "- entry\n"},
		{"list item star marker", Item{Kind: KindListItem, Marker: "*", Text: "entry"}, "* entry\n"},
		{"code", Item{Kind: KindCode, Language: "go", Text: "x := 1"}, "```go\nx := 1\n```\n"},
		{"formula", Item{Kind: KindFormula, Text: "e=mc^2"}, "$$\ne=mc^2\n$$\n"},
		{"picture default caption", Item{Kind: KindPicture}, "![Image]()\n"},
		{"picture custom caption", Item{Kind: KindPicture, Caption: "Figure 1"}, "![Figure 1]()\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := itemToMarkdown(tt.item)
			if got != tt.expected {
				t.Errorf("itemToMarkdown() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	item := Item{Kind: KindTable, Grid: [][]string{
		{"Name", "Count"},
		{"alpha", "1"},
		{"beta", "2"},
	}}

	got := itemToMarkdown(item)
	expected := "| Name | Count |\n| --- | --- |\n| alpha | 1 |\n| beta | 2 |\n"
	if got != expected {
		t.Errorf("table markdown = %q, want %q", got, expected)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	if got := Render(Document{}); got != "" {
		t.Errorf("empty document rendered %q, want empty", got)
	}
}

func TestRenderNoPageProvenance(t *testing.T) {
	doc := Document{Items: []Item{{Kind: KindText, Page: 0, Text: "floating"}}}
	md := Render(doc)

	if strings.Contains(md, "PAGE:") {
		t.Error("items without page provenance must not emit page markers")
	}
	if !strings.Contains(md, "floating") {
		t.Error("item text missing from output")
	}
}
