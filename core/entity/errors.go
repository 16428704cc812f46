package entity

import "errors"

var (
	ErrEmptyID     = errors.New("entity does not have ID")
	ErrUnknownKind = errors.New("unknown kind")
)
