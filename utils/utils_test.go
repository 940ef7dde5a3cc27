package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{
		"01711111111",
		"+8801711111111",
		" 01911234567 ",
	}
	for _, phone := range valid {
		assert.True(t, ValidatePhoneNumber(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"0171111111",     // too short
		"017111111111",   // too long
		"02711111111",    // wrong prefix
		"+8802711111111", // wrong prefix with country code
		"8801711111111",  // country code without plus
		"01711-111111",   // separator
	}
	for _, phone := range invalid {
		assert.False(t, ValidatePhoneNumber(phone), "expected %q to be invalid", phone)
	}
}
