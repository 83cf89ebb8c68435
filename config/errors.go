package config

import "errors"

var (
	// ErrInvalidFee indicates the platform fee exceeds 10000 basis points.
	ErrInvalidFee = errors.New("config: fee must not exceed 10000 basis points")

	// ErrEmptyTreasury indicates no treasury address is configured.
	ErrEmptyTreasury = errors.New("config: treasury address must not be empty")

	// ErrInvalidBatchLimit indicates the batch limit is not positive.
	ErrInvalidBatchLimit = errors.New("config: batch limit must be positive")

	// ErrInvalidDeadlineBounds indicates the deadline window is inverted or zero.
	ErrInvalidDeadlineBounds = errors.New("config: deadline bounds are invalid")

	// ErrInvalidSequenceCap indicates the yearly sequence cap is zero or too wide.
	ErrInvalidSequenceCap = errors.New("config: sequence cap must fit five digits")

	// ErrEmptyChain indicates no primary chain tag is configured.
	ErrEmptyChain = errors.New("config: primary chain must not be empty")

	// ErrEmptyDomain indicates a signing-domain field is missing.
	ErrEmptyDomain = errors.New("config: signing domain fields must not be empty")
)
