package account

import "errors"

var (
	ErrAccountNotFound  = errors.New("account.not_found")
	ErrDuplicateAccount = errors.New("account.duplicate")
	ErrLastMethod       = errors.New("account.last_authentication_method")
	ErrMethodNotFound   = errors.New("account.authentication_method_not_found")
	ErrInvalidTag       = errors.New("account.invalid_authentication_tag")
	ErrNoMethods        = errors.New("account.no_authentication_methods")
	ErrStorage          = errors.New("account.storage_failure")
)
