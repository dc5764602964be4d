package harvest

import (
	"regexp"
	"strings"
)

// hostShape requires at least one dot-terminated label of alphanumerics
// and hyphens at the start of the line. This is deliberately loose: it
// filters comments, blanks, and single-label strings, and errs toward
// over-inclusion for everything else.
var hostShape = regexp.MustCompile(`^([0-9A-Za-z-]+\.)+`)

// ValidHostLine reports whether a raw host-list line names a fetchable
// host, returning the trimmed hostname when it does. Blank lines and
// lines whose first non-whitespace character is '#' are comments.
func ValidHostLine(line string) (string, bool) {
	host := strings.TrimSpace(line)
	if host == "" {
		return "", false
	}
	if strings.HasPrefix(host, "#") {
		return "", false
	}
	if !hostShape.MatchString(host) {
		return "", false
	}
	return host, true
}
