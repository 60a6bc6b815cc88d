package guests

import "errors"

var (
	ErrGuestCodeNotFound = errors.New("guest code not found")
	ErrInvalidDirectory  = errors.New("invalid guest directory")
)
