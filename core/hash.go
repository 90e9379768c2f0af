package core

import (
	"crypto/sha256"
	"encoding/binary"
)

// ComputeOfferHash computes the stable tie-break hash for a
// customer/bank pairing. Used by the final tie-breaking stage: the
// candidate with the highest hash wins.
//
// Formula: first 8 bytes of SHA256(customer_id + "|" + bank_name),
// big-endian. The separator keeps distinct pairings from colliding
// through concatenation.
func ComputeOfferHash(customerID, bankName string) uint64 {
	hash := sha256.Sum256([]byte(customerID + "|" + bankName))
	return binary.BigEndian.Uint64(hash[:8])
}
