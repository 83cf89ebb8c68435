// Package token models the two token surfaces at the protocol boundary:
// the payment asset that moves purchase revenue, and the soulbound
// ownership tokens minted to buyers.
package token

import (
	"fmt"
	"sync"
)

// PaymentAsset is the external value-transfer medium. Every method may
// fail; callers treat any failure as a hard abort of the surrounding
// operation.
type PaymentAsset interface {
	// Transfer moves amount from one account to another.
	Transfer(from, to string, amount uint64) error

	// TransferFrom moves amount out of from on behalf of spender,
	// consuming spender's allowance.
	TransferFrom(spender, from, to string, amount uint64) error

	// BalanceOf reports the current balance of an account.
	BalanceOf(account string) uint64
}

// Asset is an in-memory PaymentAsset with standard balance and allowance
// semantics. FailNext forces the next transfer to be rejected, so tests
// can exercise abort paths.
type Asset struct {
	mu         sync.Mutex
	balances   map[string]uint64
	allowances map[string]map[string]uint64 // owner -> spender -> amount

	// FailNext rejects the next Transfer or TransferFrom when set,
	// then resets.
	FailNext bool
}

// NewAsset returns an empty in-memory asset.
func NewAsset() *Asset {
	return &Asset{
		balances:   make(map[string]uint64),
		allowances: make(map[string]map[string]uint64),
	}
}

// Mint credits amount to account. Test and setup hook; real assets have
// their own issuance rules.
func (a *Asset) Mint(account string, amount uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balances[account] += amount
}

// Approve lets spender move up to amount out of owner's balance.
func (a *Asset) Approve(owner, spender string, amount uint64) error {
	if owner == "" || spender == "" {
		return ErrZeroAddress
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	m := a.allowances[owner]
	if m == nil {
		m = make(map[string]uint64)
		a.allowances[owner] = m
	}
	m[spender] = amount
	return nil
}

// Allowance reports the remaining amount spender may move out of owner.
func (a *Asset) Allowance(owner, spender string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allowances[owner][spender]
}

// BalanceOf reports the current balance of an account.
func (a *Asset) BalanceOf(account string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balances[account]
}

// Transfer moves amount from one account to another.
func (a *Asset) Transfer(from, to string, amount uint64) error {
	if from == "" || to == "" {
		return ErrZeroAddress
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.FailNext {
		a.FailNext = false
		return ErrTransferRejected
	}
	if a.balances[from] < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, from, a.balances[from], amount)
	}
	a.balances[from] -= amount
	a.balances[to] += amount
	return nil
}

// TransferFrom moves amount out of from on behalf of spender.
func (a *Asset) TransferFrom(spender, from, to string, amount uint64) error {
	if spender == "" || from == "" || to == "" {
		return ErrZeroAddress
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.FailNext {
		a.FailNext = false
		return ErrTransferRejected
	}
	allowed := a.allowances[from][spender]
	if allowed < amount {
		return fmt.Errorf("%w: %s allowed %d, needs %d", ErrInsufficientAllowance, spender, allowed, amount)
	}
	if a.balances[from] < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, from, a.balances[from], amount)
	}
	a.allowances[from][spender] = allowed - amount
	a.balances[from] -= amount
	a.balances[to] += amount
	return nil
}
