package app

import (
	"regexp"
	"strings"
)

// local-part "@" domain "." tld, no whitespace
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FilterValidEmails keeps only syntactically valid addresses, trimmed.
// Invalid entries are dropped silently; the caller decides what an empty
// result means.
func FilterValidEmails(emails []string) []string {
	valid := []string{}
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if emailPattern.MatchString(email) {
			valid = append(valid, email)
		}
	}
	return valid
}
