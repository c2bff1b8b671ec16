// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest of an artifact payload.
type Hash [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
type domainKey [32]byte

// payloadDomainKey is the ASCII encoding of the domain name, zero-padded
// to 32 bytes. Changing it invalidates every stored hash and every
// artifact file name.
var payloadDomainKey = domainKey{
	'l', 'a', 't', 'e', 'x', 'p', 'l', 'a', 'c', 'e', '.', 'a', 'r', 't', 'i', 'f',
	'a', 'c', 't', '.', 'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0,
}

// MethodName identifies the hash function in serialized properties.
const MethodName = "blake3"

// HashPayload returns the hash of a base64-encoded artifact payload. The
// hash is computed over the encoded text, not the decoded bytes, so it
// can be verified without decoding.
func HashPayload(payload string) Hash {
	return keyedHash(payloadDomainKey, []byte(payload))
}

// FormatHash returns the hex-encoded string representation of a hash.
// This is the form used in file names, serialized properties and logs.
func FormatHash(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing artifact hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("artifact hash is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

func keyedHash(key domainKey, data []byte) Hash {
	// NewKeyed only fails for a key that is not 32 bytes long, which
	// domainKey rules out.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("artifact: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
