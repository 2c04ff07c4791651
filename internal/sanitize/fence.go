// Package sanitize strips the markdown fence some models wrap around code.
//
// The parser is deliberately small and is not a general Markdown reader:
//
//   - The input is trimmed, then checked for a leading and a trailing "```".
//     Both must be present; a single marker leaves the text Unfenced.
//     Because trimming comes first, a response that opens with a blank line
//     before its fence is still treated as Fenced.
//   - Exactly three backticks are removed from each end. Text shorter than
//     six characters that still starts and ends with a marker yields an
//     empty body.
//   - If the inner text has a newline and its first line, trimmed, is a
//     single run of letters, that line is the language tag and is dropped.
//     Tags such as "c++" or "objective-c" are not letters-only and stay in
//     the body.
//   - If the inner text has no newline at all ("```print(1)```"), the
//     three characters on each side are removed and the rest is the body,
//     even when it begins with what looks like a tag.
package sanitize

import (
	"strings"
	"unicode"
)

const fence = "```"

// Block is the parsed shape of a model response: Fenced or Unfenced.
type Block interface {
	Body() string
	isBlock()
}

// Fenced is a response that was wrapped in fence markers. Tag is empty when
// no language line was found.
type Fenced struct {
	Tag  string
	Code string
}

func (f Fenced) Body() string { return f.Code }
func (Fenced) isBlock()       {}

// Unfenced is a response without surrounding markers.
type Unfenced struct {
	Code string
}

func (u Unfenced) Body() string { return u.Code }
func (Unfenced) isBlock()       {}

// Parse classifies text and extracts the trimmed code body.
func Parse(text string) Block {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, fence) || !strings.HasSuffix(s, fence) {
		return Unfenced{Code: s}
	}

	inner := ""
	if len(s) >= 2*len(fence) {
		inner = s[len(fence) : len(s)-len(fence)]
	}

	nl := strings.IndexByte(inner, '\n')
	if nl < 0 {
		return Fenced{Code: strings.TrimSpace(inner)}
	}

	first := strings.TrimSpace(inner[:nl])
	if isTag(first) {
		return Fenced{Tag: first, Code: strings.TrimSpace(inner[nl+1:])}
	}
	return Fenced{Code: strings.TrimSpace(inner)}
}

// Sanitize returns the code body of a model response.
func Sanitize(text string) string {
	return Parse(text).Body()
}

func isTag(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
