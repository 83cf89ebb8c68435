package request

import (
	"fmt"
	"math/big"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"

	"github.com/opusorg/libopus-go/config"
)

// Compact recoverable signature layout: header(1) || r(32) || s(32).
// The header encodes the recovery parameter (27..30) plus 4 for a
// compressed public key.
const (
	sigLen       = 65
	sigHeaderMin = 27
	sigHeaderMax = 34
)

// halfOrder is half the secp256k1 group order; signatures with s above it
// are rejected as malleable.
var halfOrder = new(big.Int).Rsh(ec.S256().Params().N, 1)

// Sign produces the 65-byte compact recoverable signature over the
// request digest. This is the off-chain signing client; the registry side
// never holds a private key.
func Sign(req *WorkRequest, dom config.Domain, priv *ec.PrivateKey) ([]byte, error) {
	if req == nil || priv == nil {
		return nil, ErrNilParam
	}
	sig, err := ec.SignCompact(ec.S256(), priv, Hash(req, dom), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return sig, nil
}

// RecoverSigner recovers the signer address from a compact signature over
// the request digest. It rejects malformed lengths, out-of-range recovery
// headers, and high-s signatures (malleability hardening) before touching
// the curve.
func RecoverSigner(req *WorkRequest, dom config.Domain, sig []byte) (string, error) {
	if req == nil {
		return "", fmt.Errorf("%w: request", ErrNilParam)
	}
	if len(sig) != sigLen {
		return "", fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	if sig[0] < sigHeaderMin || sig[0] > sigHeaderMax {
		return "", fmt.Errorf("%w: header byte %d", ErrInvalidSignature, sig[0])
	}
	s := new(big.Int).SetBytes(sig[33:65])
	if s.Cmp(halfOrder) > 0 {
		return "", fmt.Errorf("%w: high-s component", ErrInvalidSignature)
	}

	pub, _, err := ec.RecoverCompact(sig, Hash(req, dom))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if pub == nil {
		return "", fmt.Errorf("%w: recovered nil key", ErrInvalidSignature)
	}

	return AddressOf(pub)
}

// AddressOf derives the protocol address for a public key.
func AddressOf(pub *ec.PublicKey) (string, error) {
	if pub == nil {
		return "", fmt.Errorf("%w: public key", ErrNilParam)
	}
	addr, err := script.NewAddressFromPublicKey(pub, true)
	if err != nil {
		return "", fmt.Errorf("%w: address derivation: %w", ErrInvalidSignature, err)
	}
	return addr.AddressString, nil
}
