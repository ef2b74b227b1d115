package store

import "errors"

var (
	// ErrEncode indicates the value could not be serialised into the
	// storage envelope.
	ErrEncode = errors.New("encode storage item")
	// ErrDecode indicates a stored payload could not be deserialised into
	// the caller's destination type.
	ErrDecode = errors.New("decode storage item")
)
