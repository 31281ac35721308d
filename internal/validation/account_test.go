package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret1"))
	assert.NoError(t, ValidatePassword("sixchr"))
	assert.Error(t, ValidatePassword("five5"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"user+tag@example.io",
	}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user @example.com",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, e := range invalid {
		assert.Error(t, ValidateEmail(e), e)
	}
}

func TestValidateFullName(t *testing.T) {
	assert.NoError(t, ValidateFullName("Ana Silva"))
	assert.Error(t, ValidateFullName(""))
	assert.Error(t, ValidateFullName("   "))
	assert.Error(t, ValidateFullName(strings.Repeat("n", 101)))
}
