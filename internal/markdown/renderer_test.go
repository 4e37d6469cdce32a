package markdown

import (
	"strings"
	"testing"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		body     string
		contains []string
	}{
		{
			name:     "heading",
			body:     "# Hi",
			contains: []string{"<h1", ">Hi</h1>"},
		},
		{
			name:     "emphasis",
			body:     "*soft* and **loud**",
			contains: []string{"<em>soft</em>", "<strong>loud</strong>"},
		},
		{
			name:     "unordered list",
			body:     "- one\n- two\n",
			contains: []string{"<ul>", "<li>one</li>", "<li>two</li>"},
		},
		{
			name:     "ordered list",
			body:     "1. first\n2. second\n",
			contains: []string{"<ol>", "<li>first</li>"},
		},
		{
			name:     "fenced code block",
			body:     "```go\nfunc main() {}\n```\n",
			contains: []string{"<pre", "main"},
		},
		{
			name:     "link",
			body:     "[site](https://example.com)",
			contains: []string{`<a href="https://example.com">site</a>`},
		},
		{
			name:     "blockquote",
			body:     "> quoted",
			contains: []string{"<blockquote>", "quoted"},
		},
		{
			name:     "table",
			body:     "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render([]byte(tt.body))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestRenderer_Render_OmitsRawHTML(t *testing.T) {
	r := NewRenderer()

	got, err := r.Render([]byte("before\n\n<script>alert(1)</script>\n\nafter"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("Render() = %q, should not emit raw script tags", got)
	}
	if !strings.Contains(got, "after") {
		t.Errorf("Render() = %q, want surrounding text kept", got)
	}
}

func TestRenderer_Render_Empty(t *testing.T) {
	got, err := NewRenderer().Render(nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}
}
