package helper

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxSanitizeRounds bounds the re-sanitizing of text whose entities decode
// into new markup.
const maxSanitizeRounds = 3

// Sanitizer strips unsafe markup from user supplied text. The result is
// unescaped, so it holds the characters the client sent minus the removed markup.
type Sanitizer struct {
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		ugc:    bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// Text keeps user generated content markup and drops scripts and handlers.
func (s *Sanitizer) Text(in string) string {
	return settle(s.ugc, in)
}

// Plain removes every tag, used for titles and tag names.
func (s *Sanitizer) Plain(in string) string {
	return settle(s.strict, in)
}

// settle sanitizes and unescapes until the text stops changing, so an
// escaped tag cannot come back as live markup.
func settle(p *bluemonday.Policy, in string) string {
	out := in
	for i := 0; i < maxSanitizeRounds; i++ {
		next := html.UnescapeString(p.Sanitize(out))
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(out)
}
