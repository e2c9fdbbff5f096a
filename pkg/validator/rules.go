package validator

import (
	"net/mail"
	"unicode/utf8"
)

// Required fails on an empty string.
func Required(field, value, message string) Rule {
	return Rule{
		Check: func() bool { return value != "" },
		Error: ValidationError{Field: field, Message: message},
	}
}

// LenBetween checks that value has between min and max characters,
// counted in runes.
func LenBetween(field, value string, min, max int, message string) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			return n >= min && n <= max
		},
		Error: ValidationError{Field: field, Message: message},
	}
}

// Email accepts a bare RFC 5322 address. Display names such as
// "Alice <a@example.com>" are rejected.
func Email(field, value, message string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Name == "" && addr.Address == value
		},
		Error: ValidationError{Field: field, Message: message},
	}
}
