//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dwp

import (
	"crypto/hmac"
	"crypto/sha256"
)

// DeriveKey expands masterSecret into a BELT key of the requested
// length (16, 24, or 32 octets) using the HKDF-Expand construction,
// labeled with info. It is adapted from the donor repository's
// crypto/hkdf.ExpandTLS13 (itself an HKDF-Expand), repurposed here to
// hand a Session a key derived from a longer-lived secret instead of a
// TLS 1.3 traffic secret.
//
// DWP has no key-agreement facility of its own; deriving a key from a
// longer-lived secret is squarely the caller's concern, provided here
// as a convenience the way the donor provides ExpandTLS13 to its TLS
// stack.
func DeriveKey(masterSecret, info []byte, keyType int) ([]byte, error) {
	if keyType != 16 && keyType != 24 && keyType != 32 {
		return nil, ErrBadInput
	}
	out := make([]byte, keyType)
	expand(masterSecret, info, out)
	return out, nil
}

func expand(pseudorandomKey, info, out []byte) {
	expander := hmac.New(sha256.New, pseudorandomKey)
	counter := []byte{1}

	var prev []byte

	for len(out) > 0 {
		if counter[0] > 1 {
			expander.Reset()
			expander.Write(prev)
		}
		expander.Write(info)
		expander.Write(counter)
		prev = expander.Sum(prev[:0])
		counter[0]++

		n := copy(out, prev)
		out = out[n:]
	}
}
