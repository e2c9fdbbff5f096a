package password

import "errors"

var (
	ErrInvalidHash   = errors.New("password.invalid_hash")
	ErrEmptyPassword = errors.New("password.empty")
)
