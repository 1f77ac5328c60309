package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterValidEmails(t *testing.T) {
	valid := FilterValidEmails([]string{
		"a@x.com",
		" b@y.org ",
		"no-at-sign",
		"no@tld",
		"spaces in@x.com",
		"",
		"c@sub.domain.io",
	})
	assert.Equal(t, []string{"a@x.com", "b@y.org", "c@sub.domain.io"}, valid)
}

func TestFilterValidEmailsAllInvalid(t *testing.T) {
	assert.Empty(t, FilterValidEmails([]string{"nope", "@x.com", "a@b"}))
	assert.Empty(t, FilterValidEmails(nil))
}
