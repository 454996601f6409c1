package mailer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	policyOnce   sync.Once

	blockTags = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/h[1-6]|/li|/tr)\s*/?>`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
	spaceRuns = regexp.MustCompile(`[ \t]+`)
)

// PlainText converts an HTML body into readable plain text.
// Line-breaking tags become newlines, all markup is stripped and entities are decoded.
func PlainText(htmlBody string) string {
	policyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})

	withBreaks := blockTags.ReplaceAllString(htmlBody, "$0\n")
	stripped := html.UnescapeString(strictPolicy.Sanitize(withBreaks))

	lines := strings.Split(stripped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}

	return strings.TrimSpace(blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
