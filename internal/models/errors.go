package models

import "errors"

// Sentinel errors shared by repositories, the engagement engine and the
// ownership policy. Handlers translate them to HTTP status codes in one place.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrForbidden        = errors.New("not authorized to modify this resource")
	ErrSelfSubscription = errors.New("cannot subscribe to your own channel")
	ErrInvalidArgument  = errors.New("invalid argument")
)
