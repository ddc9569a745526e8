package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrUnauthorized
	ErrNotFound
	ErrInvalid
	ErrIdentityNotSet
	ErrInternal
	ErrStoreUnavailable
	ErrRetrievalUnavailable
	ErrGenerationUnavailable
)
