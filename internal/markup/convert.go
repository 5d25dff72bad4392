// Package markup converts blog content between the persisted markdown dialect
// (storage form) and the HTML subset the editor works on (display form).
//
// Both directions go through Document. The conversion is lossy outside the
// dialect but reaches a fixed point after one round trip.
package markup

import "strings"

// ToDisplay converts storage form to display form.
func ToDisplay(markdown string) string {
	return RenderDisplay(Parse(markdown))
}

// ToStorage converts display form to storage form.
func ToStorage(display string) string {
	return RenderMarkdown(ParseDisplay(display))
}

// PlainText strips all markup from the storage form.
func PlainText(markdown string) string {
	return Parse(markdown).PlainText()
}

// WordCount counts whitespace separated words of the plain text.
func WordCount(markdown string) int {
	return len(strings.Fields(PlainText(markdown)))
}

// ReadTime is the reading time in minutes at 200 words a minute, at least one.
func ReadTime(words int) int {
	return max(1, (words+199)/200)
}
