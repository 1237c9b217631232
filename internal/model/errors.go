package model

import "errors"

var (
	// ErrTitleRequired is returned when a channel creation request is missing the title.
	ErrTitleRequired = errors.New("title is required")

	// ErrChannelNotFound is returned when a channel is not found.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrUnauthenticated is returned when a handshake lacks a resolvable identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)
