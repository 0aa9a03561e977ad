package domain

import "errors"

var (
	// ErrUpstreamUnavailable marks failures to reach an external dependency
	// (network errors, non-2xx responses, model call errors).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamContract marks responses that arrived but do not match the
	// expected shape or value ranges.
	ErrUpstreamContract = errors.New("upstream contract violation")

	// ErrInvalidEmail is returned for addresses that fail validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidChatMessage is returned for chat histories with unknown roles
	// or no content.
	ErrInvalidChatMessage = errors.New("invalid chat message")
)
