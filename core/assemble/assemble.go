// Package assemble joins per-document Markdown fragments into the final
// combined document and normalizes its blank-line spacing.
package assemble

import (
	"regexp"
	"strings"
)

// Separator is placed after every document fragment.
const Separator = "\n---\n\n"

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Join concatenates fragments with Separator between consecutive entries.
func Join(fragments []string) string {
	return strings.Join(fragments, Separator)
}

// CollapseBlankLines replaces every run of three or more newlines with
// exactly two. Applying it more than once has no further effect.
func CollapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}

// Header renders the fixed title, introductory quote and rule that open the
// combined document.
func Header(title, intro string) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	b.WriteString("> " + intro + "\n\n")
	b.WriteString("---\n\n")
	return b.String()
}

// Document builds the complete output: the header, then each fragment
// followed by Separator. Blank lines are collapsed once, as the last step.
func Document(title, intro string, fragments []string) string {
	var b strings.Builder
	b.WriteString(Header(title, intro))
	for _, frag := range fragments {
		b.WriteString(frag)
		b.WriteString(Separator)
	}
	return CollapseBlankLines(b.String())
}
