package markdown_test

import (
	"strings"
	"testing"

	"timebox/internal/platform/markdown"
)

func TestParseAndRender(t *testing.T) {
	t.Parallel()
	doc, err := markdown.Parse("---\r\ndate: 2024-03-01\r\npriorities:\r\n  - a\r\n---\r\n\r\nhello\r\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Meta["date"] != "2024-03-01" {
		t.Fatalf("unexpected meta: %#v", doc.Meta)
	}
	if doc.Body != "hello\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	again, err := markdown.Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if again.Body != doc.Body || again.Meta["date"] != "2024-03-01" {
		t.Fatalf("round trip changed document: %q", out)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	doc, err := markdown.Parse("just text")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Meta) != 0 || doc.Body != "just text" {
		t.Fatalf("unexpected doc: %#v", doc)
	}
	if _, err := markdown.Parse("---\ndate: x\n"); err == nil {
		t.Fatalf("unterminated frontmatter should fail")
	}
}

func TestParseEmptyFrontmatter(t *testing.T) {
	t.Parallel()
	for in, body := range map[string]string{
		"---\n---\nbody":     "body",
		"---\n---\n\nbody\n": "body\n",
		"---\n---":           "",
		"---\r\n---\r\nbody": "body",
	} {
		doc, err := markdown.Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if doc.Meta == nil || len(doc.Meta) != 0 || doc.Body != body {
			t.Fatalf("parse %q: unexpected doc %#v", in, doc)
		}
	}
}

func TestReplaceBlockKeepsUserText(t *testing.T) {
	t.Parallel()
	body := markdown.ReplaceBlock("", "sheet", "v1")
	body = "my notes\n\n" + body + "\nfooter\n"
	body = markdown.ReplaceBlock(body, "sheet", "v2\n")

	start, end := markdown.Markers("sheet")
	if strings.Count(body, start) != 1 || strings.Count(body, end) != 1 {
		t.Fatalf("expected exactly one block: %q", body)
	}
	if strings.Contains(body, "v1") || !strings.Contains(body, start+"\nv2\n"+end) {
		t.Fatalf("block not replaced: %q", body)
	}
	if !strings.HasPrefix(body, "my notes\n") || !strings.HasSuffix(body, "footer\n") {
		t.Fatalf("user text lost: %q", body)
	}
}

func TestTableEscapesCells(t *testing.T) {
	t.Parallel()
	got := markdown.Table([]string{"Hora", "Tarea"}, [][]string{{"9 AM", "a|b\nc"}, {"9:30 AM"}})
	want := "| Hora | Tarea |\n| --- | --- |\n| 9 AM | a\\|b<br>c |\n| 9:30 AM |  |\n"
	if got != want {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
}
