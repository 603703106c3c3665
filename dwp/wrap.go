//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dwp

import "github.com/markkurossi/dwp/belt"

// Wrap is the one-shot encode façade. It authenticates ad and encrypts
// pt under key/iv, returning the ciphertext (same length as pt) and an
// 8-octet tag. key must be 16, 24, or 32 octets; iv must be exactly
// IVSize octets.
//
// ad and pt are independent caller buffers here, so there is no
// aliasing hazard in this Go rendition, but StepI still runs before
// StepE to mirror the reference's in-place C API, where src2 (ad) may
// alias dest.
func Wrap(key, iv, ad, pt []byte) (ct, tag []byte, err error) {
	if len(key) != int(belt.Key128) && len(key) != int(belt.Key192) && len(key) != int(belt.Key256) {
		return nil, nil, ErrBadInput
	}
	if len(iv) != IVSize {
		return nil, nil, ErrBadInput
	}

	s, err := Start(key, iv)
	if err != nil {
		return nil, nil, err
	}
	defer s.Zero()

	if err := s.StepI(ad); err != nil {
		return nil, nil, err
	}

	ct = make([]byte, len(pt))
	copy(ct, pt)
	if err := s.StepE(ct); err != nil {
		return nil, nil, err
	}
	if err := s.StepA(ct); err != nil {
		return nil, nil, err
	}

	tag = make([]byte, TagSize)
	if err := s.StepG(tag); err != nil {
		return nil, nil, err
	}
	return ct, tag, nil
}

// Unwrap is the one-shot decode façade. It verifies tag against ad
// and ct before releasing any plaintext; on a mismatch it returns
// ErrAuthFailure and a nil plaintext.
func Unwrap(key, iv, ad, ct, tag []byte) (pt []byte, err error) {
	if len(key) != int(belt.Key128) && len(key) != int(belt.Key192) && len(key) != int(belt.Key256) {
		return nil, ErrBadInput
	}
	if len(iv) != IVSize {
		return nil, ErrBadInput
	}
	if len(tag) != TagSize {
		return nil, ErrBadInput
	}

	s, err := Start(key, iv)
	if err != nil {
		return nil, err
	}
	defer s.Zero()

	if err := s.StepI(ad); err != nil {
		return nil, err
	}
	if err := s.StepA(ct); err != nil {
		return nil, err
	}
	ok, err := s.StepV(tag)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthFailure
	}

	pt = make([]byte, len(ct))
	copy(pt, ct)
	// StepD is only reached once StepV has confirmed the tag: no
	// decryption that releases unverified plaintext.
	if err := s.StepD(pt); err != nil {
		return nil, err
	}
	return pt, nil
}
