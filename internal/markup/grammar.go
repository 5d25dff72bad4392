package markup

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// delimiter is an inline emphasis token. The table order is the match order,
// so "**" is always tried before "*".
type delimiter struct {
	token string
	mark  Mark
}

var inlineDelimiters = []delimiter{
	{token: "**", mark: MarkBold},
	{token: "~~", mark: MarkStrike},
	{token: "*", mark: MarkItalic},
}

// escapable characters, escaped in this order when writing storage form.
var escapable = []string{`\`, `*`, `#`, `~`, `[`, `]`}

// lineStartEscapable are escaped only where they would open a block at the
// start of a line.
const lineStartEscapable = ".!<"

var (
	headingPattern      = regexp.MustCompile(`^(#{1,3}) (.*)$`)
	imagePattern        = regexp.MustCompile(`^!\[((?:[^\]\\]|\\.)*)\]\(([^)\s]*)\)$`)
	brokenImagePattern  = regexp.MustCompile(`^!\[((?:[^\]\\]|\\.)*)\]$`)
	unorderedPattern    = regexp.MustCompile(`^\* (.*)$`)
	orderedPattern      = regexp.MustCompile(`^(\d+)\. (.*)$`)
	alignOpenPattern    = regexp.MustCompile(`^<div align="(left|center|right)">(.*)$`)
	blankRunPattern     = regexp.MustCompile(`\n{3,}`)
	textAlignPattern    = regexp.MustCompile(`text-align\s*:\s*(left|center|right)`)
	brokenImageLiteral  = "!Image"
	alignCloseTag       = "</div>"
	defaultBrokenReason = "image could not be loaded"
)

// blockRule recognises a block starting at lines[i]. It returns the number of
// lines consumed, zero when the rule does not apply.
type blockRule struct {
	name  string
	parse func(p *blockParser, lines []string, i int) int
}

// blockRules are tried in order; paragraph is the fallback.
var blockRules []blockRule

func init() {
	blockRules = []blockRule{
		{name: "align", parse: (*blockParser).alignContainer},
		{name: "heading", parse: (*blockParser).heading},
		{name: "image", parse: (*blockParser).image},
		{name: "broken-image", parse: (*blockParser).brokenImage},
		{name: "list", parse: (*blockParser).list},
	}
}

// startsBlock reports whether a line opens a non paragraph block.
func startsBlock(line string) bool {
	return alignOpenPattern.MatchString(line) ||
		headingPattern.MatchString(line) ||
		imagePattern.MatchString(line) ||
		isBrokenImage(line) ||
		listMarker(line) != listNone
}

func isBrokenImage(line string) bool {
	if line == brokenImageLiteral || brokenImagePattern.MatchString(line) {
		return true
	}
	m := imagePattern.FindStringSubmatch(line)
	return m != nil && m[2] == ""
}

type listKind int

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

func listMarker(line string) listKind {
	if unorderedPattern.MatchString(line) {
		return listUnordered
	}
	if orderedPattern.MatchString(line) {
		return listOrdered
	}
	return listNone
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func lastRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, true
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

func isEscapable(c byte) bool {
	for _, e := range escapable {
		if e[0] == c {
			return true
		}
	}
	return false
}

func isUnescapable(c byte) bool {
	return isEscapable(c) || strings.IndexByte(lineStartEscapable, c) >= 0
}

var (
	altEscaper   = strings.NewReplacer(`\`, `\\`, `]`, `\]`)
	altUnescaper = strings.NewReplacer(`\\`, `\`, `\]`, `]`)
)

func escapeAlt(alt string) string {
	return altEscaper.Replace(singleLine(alt))
}

func unescapeAlt(alt string) string {
	return altUnescaper.Replace(alt)
}

// escapeLineStarts keeps every line of paragraph content from being read
// back as a block opener.
func escapeLineStarts(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = escapeLineStart(line)
	}
	return strings.Join(lines, "\n")
}

func escapeLineStart(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	lead := line[:len(line)-len(trimmed)]
	switch {
	case orderedPattern.MatchString(line):
		dot := strings.IndexByte(line, '.')
		return line[:dot] + `\` + line[dot:]
	case strings.HasPrefix(trimmed, "!"):
		return lead + `\` + trimmed
	case strings.HasPrefix(line, "<"):
		return `\` + line
	}
	return line
}

// escapeText escapes every character with inline or block meaning.
func escapeText(s string) string {
	for _, e := range escapable {
		s = strings.ReplaceAll(s, e, `\`+e)
	}
	return s
}
