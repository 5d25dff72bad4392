package markup

import (
	"net/url"
	"strings"
)

// safeURL returns the url when it may be placed in an href or src attribute,
// empty otherwise. Relative paths and fragments are allowed.
func safeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}

var imageURLEscaper = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")

// imageDestination encodes the characters that would end an image url early.
func imageDestination(u string) string {
	return imageURLEscaper.Replace(u)
}

var parenEscaper = strings.NewReplacer("(", "%28", ")", "%29")

// linkDestination keeps balanced parentheses as written and encodes them
// otherwise.
func linkDestination(href string) string {
	href = strings.ReplaceAll(href, "\n", "%0A")
	if parensBalanced(href) {
		return href
	}
	return parenEscaper.Replace(href)
}

func parensBalanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return false
			}
			depth--
		}
	}
	return depth == 0
}

// destinationEnd finds the parenthesis closing a link destination, skipping
// balanced pairs. It returns -1 when the line ends first.
func destinationEnd(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			return -1
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
