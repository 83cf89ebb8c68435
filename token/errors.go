package token

import "errors"

var (
	// ErrZeroAddress indicates an empty account address.
	ErrZeroAddress = errors.New("token: zero address")

	// ErrInsufficientBalance indicates the source account cannot cover the transfer.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrInsufficientAllowance indicates the spender's approved amount is too small.
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")

	// ErrTransferRejected indicates the asset refused the transfer.
	ErrTransferRejected = errors.New("token: transfer rejected")

	// ErrSoulbound indicates an ownership token cannot change hands.
	ErrSoulbound = errors.New("token: ownership token is soulbound")

	// ErrAlreadyMinted indicates the (work, owner) pair already holds a token.
	ErrAlreadyMinted = errors.New("token: already minted")

	// ErrNotMinted indicates no ownership token exists for the (work, owner) pair.
	ErrNotMinted = errors.New("token: not minted")

	// ErrNotLocker indicates the caller does not hold the token's lock.
	ErrNotLocker = errors.New("token: caller is not the locker")

	// ErrNotLocked indicates the token has no active lock.
	ErrNotLocked = errors.New("token: token is not locked")

	// ErrAlreadyLocked indicates the token already has an active lock.
	ErrAlreadyLocked = errors.New("token: token is already locked")
)
