package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Document is a markdown file split into YAML frontmatter and body.
type Document struct {
	Meta map[string]any
	Body string
}

// Parse splits content on a leading "---" fence. Content without one is all
// body. CRLF line endings are accepted.
func Parse(content string) (Document, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return Document{Meta: map[string]any{}, Body: content}, nil
	}
	// The leading newline lets the closing fence follow the opening one
	// directly, as in an empty block.
	rest := content[len(fence):]
	end := strings.Index(rest, "\n"+fence+"\n")
	if end < 0 {
		if strings.HasSuffix(rest, "\n"+fence) {
			end = len(rest) - len(fence) - 1
		} else {
			return Document{}, fmt.Errorf("frontmatter: missing closing %q", fence)
		}
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return Document{}, fmt.Errorf("frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	body := ""
	if after := end + len(fence) + 2; after <= len(rest) {
		body = rest[after:]
	}
	return Document{Meta: meta, Body: strings.TrimPrefix(body, "\n")}, nil
}

// Render writes the frontmatter block followed by a blank line and the body.
func (d Document) Render() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	meta := d.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("frontmatter: %w", err)
	}
	buf.WriteString(fence + "\n\n")
	buf.WriteString(d.Body)
	return buf.String(), nil
}
