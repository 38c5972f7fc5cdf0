package view

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"maragu.dev/gomponents"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// Markdown renders user-written markdown (script and model descriptions) to
// sanitized HTML. Raw HTML in the source is dropped by goldmark and anything
// that slips through is stripped by the UGC policy.
func Markdown(source string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return sanitizer.Sanitize(source)
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes()))
}

// MarkdownNode wraps Markdown for gomponents views.
func MarkdownNode(source string) gomponents.Node {
	return gomponents.Raw(Markdown(source))
}
