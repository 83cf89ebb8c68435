package request

import (
	"encoding/binary"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"

	"github.com/opusorg/libopus-go/config"
)

// Hash computes the domain-separated digest a creator signs. The layout is
// fixed and must match the off-chain signing client bit for bit:
//
//	domain = SHA256( SHA256(name) || SHA256(version) || SHA256(registry) || SHA256(salt) )
//	struct = SHA256( SHA256(uri) || price_be64 || recipientsHash ||
//	                 percentagesHash || nonce_be64 || deadline_unix_be64 ||
//	                 SHA256(chain) )
//	digest = SHA256( domain || struct )
//
// recipientsHash is SHA256 over the concatenated SHA256 of each recipient;
// percentagesHash is SHA256 over the big-endian uint16 values. Hashing the
// variable-length fields first keeps every component fixed-width, so no
// two distinct requests can encode to the same byte stream.
func Hash(req *WorkRequest, dom config.Domain) []byte {
	var buf []byte
	buf = append(buf, bsvhash.Sha256([]byte(req.ContentURI))...)
	buf = appendUint64(buf, req.Price)
	buf = append(buf, hashRecipients(req.Recipients)...)
	buf = append(buf, hashPercentages(req.Percentages)...)
	buf = appendUint64(buf, req.Nonce)
	buf = appendUint64(buf, uint64(req.Deadline.Unix()))
	buf = append(buf, bsvhash.Sha256([]byte(req.TargetChain))...)
	structHash := bsvhash.Sha256(buf)

	return bsvhash.Sha256(append(domainSeparator(dom), structHash...))
}

// domainSeparator folds the signing-domain fields into one digest.
func domainSeparator(dom config.Domain) []byte {
	var buf []byte
	buf = append(buf, bsvhash.Sha256([]byte(dom.Name))...)
	buf = append(buf, bsvhash.Sha256([]byte(dom.Version))...)
	buf = append(buf, bsvhash.Sha256([]byte(dom.Registry))...)
	buf = append(buf, bsvhash.Sha256([]byte(dom.Salt))...)
	return bsvhash.Sha256(buf)
}

func hashRecipients(recipients []string) []byte {
	var buf []byte
	for _, r := range recipients {
		buf = append(buf, bsvhash.Sha256([]byte(r))...)
	}
	return bsvhash.Sha256(buf)
}

func hashPercentages(percentages []uint16) []byte {
	buf := make([]byte, 0, 2*len(percentages))
	for _, p := range percentages {
		buf = binary.BigEndian.AppendUint16(buf, p)
	}
	return bsvhash.Sha256(buf)
}

func appendUint64(buf []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(buf, v)
}
