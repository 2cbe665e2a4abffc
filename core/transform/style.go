package transform

import (
	"regexp"
	"strings"
)

// Style sniffing works on the raw attribute text. No CSS is parsed.
var (
	smallFontRe = regexp.MustCompile(`(?i)font-size\s*:\s*(0*\.\d+\s*r?em\b|\d{1,2}(\.\d+)?\s*%|x{0,2}-?small\b|smaller\b)`)
	opacityRe   = regexp.MustCompile(`(?i)opacity\s*:\s*(0*\.\d+|0+(\.0*)?)\s*(;|$|!|\s)`)
)

// IsCircleBullet reports whether a list item style asks for the hollow
// sub-bullet marker.
func IsCircleBullet(style string) bool {
	return strings.Contains(style, "circle")
}

// IsSmallText reports whether a span style de-emphasizes its content,
// either by a font size below 1em (or 100%) or by reduced opacity.
func IsSmallText(style string) bool {
	if style == "" {
		return false
	}
	return smallFontRe.MatchString(style) || opacityRe.MatchString(style)
}
