// Package extract classifies generated text: it collects fenced code
// segments and decides which one (if any) constitutes a browser-renderable
// artifact, and which is the primary block for raw copy.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// matches a fenced code segment with a language tag: one or more word
// characters immediately after the opening fence
var fenceRegex = regexp.MustCompile("(?s)```(\\w+)[ \\t]*\\n(.*?)```")

// languages whose segments can stand alone as a renderable document
var renderableDirect = map[string]bool{
	"html": true,
	"jsx":  true,
}

// languages whose segments are wrapped in an HTML shell before rendering
var renderableWrapped = map[string]bool{
	"javascript": true,
	"js":         true,
	"css":        true,
	"typescript": true,
	"ts":         true,
}

// a single fenced code segment, in document order
type Segment struct {
	Lang string // lower-cased language tag
	Code string // trimmed fence content
}

// Result is the derived classification of one piece of generated text.
// It is recomputed on every response and never persisted.
type Result struct {
	PrimaryLanguage string `json:"primary_language,omitempty"`
	PrimaryCode     string `json:"primary_code,omitempty"`
	Renderable      string `json:"renderable,omitempty"`
	HasRenderable   bool   `json:"has_renderable"`
}

// Segments collects all tagged fenced code segments in order of appearance.
func Segments(text string) []Segment {
	matches := fenceRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(matches))
	for _, m := range matches {
		segments = append(segments, Segment{
			Lang: strings.ToLower(m[1]),
			Code: strings.TrimSpace(m[2]),
		})
	}

	return segments
}

// SelectRenderable applies the renderable-artifact precedence over an
// ordered segment list: the first html/jsx segment wins outright and
// scanning stops; otherwise the last js/css/ts segment wins and is
// wrapped in a minimal HTML shell; otherwise there is no artifact.
func SelectRenderable(segments []Segment) (string, bool) {
	var wrapped string
	var found bool

	for _, seg := range segments {
		if renderableDirect[seg.Lang] {
			return seg.Code, true
		}

		if renderableWrapped[seg.Lang] {
			// last match wins: later segments overwrite earlier ones
			wrapped = seg.Code
			found = true
		}
	}

	if !found {
		return "", false
	}

	return wrapScript(wrapped), true
}

// PrimaryBlock locates the first fenced segment of any tag, for the
// raw-copy affordance. It applies no language filtering and no
// html/jsx precedence.
func PrimaryBlock(text string) (lang, code string, ok bool) {
	m := fenceRegex.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}

	return strings.ToLower(m[1]), strings.TrimSpace(m[2]), true
}

// Extract runs both classifications over the given text.
func Extract(text string) Result {
	var result Result

	if lang, code, ok := PrimaryBlock(text); ok {
		result.PrimaryLanguage = lang
		result.PrimaryCode = code
	}

	if doc, ok := SelectRenderable(Segments(text)); ok {
		result.Renderable = doc
		result.HasRenderable = true
	}

	return result
}

// wraps code in a minimal HTML shell: a style-reset head pulling in the
// Tailwind utility framework and a body running the code in a script tag
func wrapScript(code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<script src="https://cdn.tailwindcss.com"></script>
<style>body { margin: 0; padding: 1rem; font-family: sans-serif; }</style>
</head>
<body>
<script>
%s
</script>
</body>
</html>`, code)
}
