package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// National id pattern - exactly 14 digits
	NationalIDPattern = `^\d{14}$`

	// Phone number pattern - exactly 11 digits
	PhonePattern = `^\d{11}$`

	// Minimum number of whitespace-separated parts in a full legal name
	FullNameMinParts = 4
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	NationalID *regexp.Regexp
	Phone      *regexp.Regexp
}{
	NationalID: regexp.MustCompile(NationalIDPattern),
	Phone:      regexp.MustCompile(PhonePattern),
}

// IsValidNationalID reports whether the value is exactly 14 numeric characters.
func IsValidNationalID(value string) bool {
	return CompiledPatterns.NationalID.MatchString(value)
}

// IsValidPhoneNumber reports whether the value is exactly 11 numeric characters.
func IsValidPhoneNumber(value string) bool {
	return CompiledPatterns.Phone.MatchString(value)
}

// IsValidFullName reports whether the name carries at least four
// whitespace-separated components, the full legal name convention the
// assignment letters require.
func IsValidFullName(value string) bool {
	return len(strings.Fields(value)) >= FullNameMinParts
}
