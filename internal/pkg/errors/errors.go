package errors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalid               = errors.New("invalid")
	ErrIdentityNotSet        = errors.New("identity not set")
	ErrStoreUnavailable      = errors.New("fact store unavailable")
	ErrRetrievalUnavailable  = errors.New("retrieval unavailable")
	ErrGenerationUnavailable = errors.New("generation unavailable")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}
