package validator

import "regexp"

var (
	// Letters, digits and spaces only. Empty input matches.
	alphanumericWithSpacesRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)

	// local@domain.tld with a two or three letter TLD, case-insensitive.
	emailRegex = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,3}$`)

	// Anchored at the start only: any value beginning with a digit matches.
	numericLeadingRegex = regexp.MustCompile(`^[0-9]+`)

	// Optional country code, then (area) exchange-line with separators.
	phoneRegex = regexp.MustCompile(`^(\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}$`)
)

// AlphanumericWithSpaces allows ASCII letters, digits and spaces.
func AlphanumericWithSpaces() Rule {
	return Pattern("alphanumeric_with_spaces", alphanumericWithSpacesRegex)
}

// EmailPattern is the stricter address shape used next to Email.
func EmailPattern() Rule {
	return Pattern("email", emailRegex)
}

// NumericLeading requires the value to start with a digit.
func NumericLeading() Rule {
	return Pattern("numeric_leading", numericLeadingRegex)
}

// Phone matches North American style numbers with an optional country code.
func Phone() Rule {
	return Pattern("phone", phoneRegex)
}
