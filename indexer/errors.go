package indexer

import "errors"

var (
	// ErrUnauthorized indicates the caller may not perform the operation.
	ErrUnauthorized = errors.New("indexer: unauthorized")

	// ErrInvalidAddress indicates a zero address parameter.
	ErrInvalidAddress = errors.New("indexer: invalid address")

	// ErrUnknownWork indicates the reporting address is not a work
	// registered by the configured factory.
	ErrUnknownWork = errors.New("indexer: reporter is not a registered work")

	// ErrWorkMismatch indicates the reported work ID does not match the
	// ID registered for the reporting address.
	ErrWorkMismatch = errors.New("indexer: work ID does not match reporter")

	// ErrAlreadyRegistered indicates the work address was already registered.
	ErrAlreadyRegistered = errors.New("indexer: work already registered")

	// ErrAlreadyIndexed indicates this (buyer, work) pair was already recorded.
	ErrAlreadyIndexed = errors.New("indexer: purchase already indexed")

	// ErrStore indicates the persistence layer failed.
	ErrStore = errors.New("indexer: store failure")
)
