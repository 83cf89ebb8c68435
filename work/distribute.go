package work

import "math/bits"

// mulDivBps computes amount*bps/10000 with a 128-bit intermediate, so
// amounts near the uint64 ceiling never wrap. bps must be at most 10000;
// the quotient then always fits uint64.
func mulDivBps(amount, bps uint64) uint64 {
	hi, lo := bits.Mul64(amount, bps)
	q, _ := bits.Div64(hi, lo, totalBps)
	return q
}

// splitShares calculates per-recipient payouts for a total amount.
// The last recipient gets the exact remainder instead of its formulaic
// share, so the full amount is always disbursed with zero residue; the
// last recipient absorbs the rounding error.
func splitShares(total uint64, split []Share) []uint64 {
	out := make([]uint64, len(split))
	var distributed uint64
	for i, s := range split {
		if i == len(split)-1 {
			out[i] = total - distributed
		} else {
			amount := mulDivBps(total, uint64(s.Bps))
			out[i] = amount
			distributed += amount
		}
	}
	return out
}

// validateSplit checks the royalty table at construction time: nonzero
// recipients, no empty addresses, shares summing to exactly 10000.
func validateSplit(split []Share) error {
	if len(split) == 0 {
		return ErrEmptySplit
	}
	var sum uint64
	for _, s := range split {
		if s.Recipient == "" {
			return ErrZeroRecipient
		}
		sum += uint64(s.Bps)
	}
	if sum != totalBps {
		return ErrBadSplitSum
	}
	return nil
}
