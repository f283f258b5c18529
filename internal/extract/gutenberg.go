package extract

import "regexp"

// Project Gutenberg transcriptions wrap the book in license boilerplate
// delimited by START/END marker lines.
var (
	gutenbergStart = regexp.MustCompile(`(?m)^\*+ ?START OF.*$`)
	gutenbergEnd   = regexp.MustCompile(`(?m)^\*+ ?END OF.*$`)
)

// StripGutenberg returns the book contents with any Project Gutenberg header
// and footer excised. Text without the markers is returned unchanged, so the
// function is safe on arbitrary documents.
func StripGutenberg(text string) string {
	if loc := gutenbergStart.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}
	if loc := gutenbergEnd.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return text
}
