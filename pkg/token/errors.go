package token

import "errors"

var (
	ErrMalformedToken = errors.New("token.malformed")
	ErrInvalidLength  = errors.New("token.invalid_length")
)
