package work

import "errors"

var (
	// ErrNilParam indicates a required constructor parameter is missing.
	ErrNilParam = errors.New("work: nil parameter")

	// ErrBadSplitSum indicates the royalty shares do not sum to 10000 basis points.
	ErrBadSplitSum = errors.New("work: royalty shares must sum to 10000 basis points")

	// ErrEmptySplit indicates the royalty table has no recipients.
	ErrEmptySplit = errors.New("work: royalty table must not be empty")

	// ErrZeroRecipient indicates a royalty recipient address is empty.
	ErrZeroRecipient = errors.New("work: zero recipient address")

	// ErrNotCreator indicates the caller is not the work's creator.
	ErrNotCreator = errors.New("work: caller is not the creator")

	// ErrNotPrimaryChain indicates the work is deployed on a read-only chain.
	ErrNotPrimaryChain = errors.New("work: not on the primary settlement chain")

	// ErrAlreadyPurchased indicates the buyer already bought this edition.
	ErrAlreadyPurchased = errors.New("work: already purchased")

	// ErrInvalidEdition indicates an unrecognized edition kind.
	ErrInvalidEdition = errors.New("work: invalid edition")

	// ErrEditionExists indicates the edition was already created.
	ErrEditionExists = errors.New("work: edition already created")

	// ErrEditionNotCreated indicates the edition does not exist yet.
	ErrEditionNotCreated = errors.New("work: edition not created")

	// ErrEditionDisabled indicates the edition is not enabled for purchase.
	ErrEditionDisabled = errors.New("work: edition disabled")

	// ErrPriceTooHigh indicates an edition price above the configured cap.
	ErrPriceTooHigh = errors.New("work: price exceeds configured maximum")

	// ErrStreamingFixed indicates the streaming edition is permanently free
	// and always enabled.
	ErrStreamingFixed = errors.New("work: streaming edition is fixed")

	// ErrNothingPending indicates there are no undistributed earnings.
	ErrNothingPending = errors.New("work: nothing pending to distribute")

	// ErrTransferFailed indicates the payment asset rejected a transfer.
	ErrTransferFailed = errors.New("work: asset transfer failed")

	// ErrReentrancy indicates a mutating call re-entered while one was in flight.
	ErrReentrancy = errors.New("work: reentrant call")
)
