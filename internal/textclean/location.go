package textclean

import (
	"regexp"
	"strings"
)

var (
	// "vil." (viloyat) and "обл." (область) mark the region part of an
	// address. The token is replaced with a comma so the district that
	// follows stays separated.
	regionSuffixRe = regexp.MustCompile(`(?i)(?:^|\s+)(?:vil|обл)\.,?`)
	commaRunRe     = regexp.MustCompile(`(?:\s*,\s*)+`)
	spaceRunRe     = regexp.MustCompile(`\s+`)
)

// NormalizeLocation removes region suffix tokens from an address and tidies
// the commas and spaces left around them.
func NormalizeLocation(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	s := strings.ReplaceAll(name, "\u00a0", " ")
	s = regionSuffixRe.ReplaceAllString(s, ",")
	s = commaRunRe.ReplaceAllString(s, ", ")
	s = spaceRunRe.ReplaceAllString(s, " ")

	return strings.Trim(s, ", \t\n")
}
