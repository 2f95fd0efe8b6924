package services

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced to the HTTP layer. Wrapped causes stay in the chain
// so logs keep the origin while handlers match with errors.Is.
var (
	ErrStoreUnavailable    = errors.New("transaction store unavailable")
	ErrUpstreamUnavailable = errors.New("ai provider unavailable")
	ErrInvalidInput        = errors.New("invalid transaction input")
)

func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreUnavailable, err))
}

func upstreamFailure(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrUpstreamUnavailable, err))
}
