package markdown

import (
	"fmt"
	"strings"
)

// Markers returns the comment pair delimiting the generated block name.
func Markers(name string) (start, end string) {
	return fmt.Sprintf("<!-- timebox:%s:start -->", name), fmt.Sprintf("<!-- timebox:%s:end -->", name)
}

// ReplaceBlock swaps the generated block called name in body for generated,
// appending the block when body has none. Text outside the markers is the
// user's and is kept as is.
func ReplaceBlock(body, name, generated string) string {
	startMarker, endMarker := Markers(name)
	block := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker

	start := strings.Index(body, startMarker)
	if start >= 0 {
		if end := strings.Index(body[start:], endMarker); end >= 0 {
			end += start + len(endMarker)
			return body[:start] + block + body[end:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
