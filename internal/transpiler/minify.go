package transpiler

import (
	"regexp"
	"strings"
)

var (
	// Block comments, or a line comment whose "//" is not preceded by "\" or
	// ":". The guard character is captured so it can be put back.
	commentRegex     = regexp.MustCompile(`(?m)/\*[\s\S]*?\*/|([^\\:]|^)//.*$`)
	lineEndingsRegex = regexp.MustCompile(`[\r\n]+`)
	spacesRegex      = regexp.MustCompile(`[ \t]+`)
)

// compactChars are stripped of adjacent spaces, in this order.
var compactChars = []string{
	"(", ")", ",", "=", ";", "+", "-", "*", "/", "&", "|", "%", "~", ".", ":", "[", "]", "?",
}

// StripComments removes block and line comments.
func StripComments(src string) string {
	return commentRegex.ReplaceAllString(src, "$1")
}

// CollapseLineEndings replaces every run of line terminators with a single newline.
func CollapseLineEndings(src string) string {
	return lineEndingsRegex.ReplaceAllString(src, "\n")
}

// CollapseSpaces replaces every run of spaces and tabs with a single space.
func CollapseSpaces(src string) string {
	return spacesRegex.ReplaceAllString(src, " ")
}

// CompactOperators removes the space before and after punctuation and
// operator characters. Each character is driven to a fixed point before the
// next one is handled.
//
// There is no tokenizer behind this: tokens not covered by the character list
// keep their spacing, and a space that separated two covered tokens is lost.
func CompactOperators(src string) string {
	for _, c := range compactChars {
		for {
			n := len(src)
			src = strings.ReplaceAll(src, " "+c, c)
			src = strings.ReplaceAll(src, c+" ", c)
			if len(src) == n {
				break
			}
		}
	}
	return src
}

// Minify runs every minification pass in order.
//
// A second run leaves the result unchanged, with one exception: compaction
// can join "/ /" into "//", which the next run strips as a line comment.
func Minify(src string) string {
	src = StripComments(src)
	src = CollapseLineEndings(src)
	src = CollapseSpaces(src)
	return CompactOperators(src)
}
