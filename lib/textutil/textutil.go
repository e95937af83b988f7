package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanCell normalizes the text content of a scraped table cell:
// non-breaking spaces become regular spaces, non-printable characters
// are dropped, runs of whitespace collapse and the ends are trimmed.
func CleanCell(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = removeNonPrintable(s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.Trim(s, " \t\n")
}

// PartitionComma splits on the first comma, returning the left part and
// the trimmed remainder. The second return is "" when no comma exists.
func PartitionComma(s string) (string, string) {
	left, right, found := strings.Cut(s, ",")
	if !found {
		return s, ""
	}
	return left, strings.Trim(right, " \t\n")
}
