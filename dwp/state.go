//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package dwp implements the DWP authenticated-encryption mode over the
// BELT block cipher (STB 34.101.31): CTR-mode payload encryption plus a
// GF(2^128) polynomial MAC over associated data and ciphertext. See
// State for the incremental streaming state machine and Wrap/Unwrap for
// the one-shot façades built on top of it.
package dwp

import (
	"crypto/subtle"

	"github.com/markkurossi/dwp/belt"
)

// TagSize is the length, in octets, of a DWP authentication tag.
const TagSize = 8

// IVSize is the required IV length in octets.
const IVSize = belt.BlockSize

type phase int

const (
	phaseAD phase = iota
	phaseCT
	phaseFinal
)

// State is the DWP incremental streaming state. It is mutated by Start
// and the Step* methods in the order I* -> (E|A)* -> G|V; callers must
// call Zero when done with it.
type State struct {
	ctr *belt.CTR
	sk  *belt.ScheduledKey

	r belt.Block // R: polynomial-hash key, fixed after Start
	t belt.Block // T: running polynomial accumulator

	lAD uint64 // bits of associated data fed via StepI
	lCT uint64 // bits of ciphertext fed via StepA

	block  [belt.BlockSize]byte // scratch for assembling a partial block
	filled int                  // valid octets in block, always < 16

	phase phase
}

// Start creates a new DWP state under key (16, 24, or 32 octets) and iv
// (exactly 16 octets). iv and the returned state must not alias.
func Start(key, iv []byte) (*State, error) {
	if len(iv) != IVSize {
		return nil, ErrBadInput
	}
	sk, err := belt.Schedule(key)
	if err != nil {
		return nil, ErrBadInput
	}
	ctr, err := belt.NewCTR(sk, iv)
	if err != nil {
		return nil, ErrBadInput
	}

	rBytes := make([]byte, belt.BlockSize)
	copy(rBytes, iv)
	belt.EncryptBlock(sk, rBytes)

	return &State{
		ctr:   ctr,
		sk:    sk,
		r:     belt.BlockFromBytes(rBytes),
		t:     belt.BlockFromBytes(belt.H16),
		phase: phaseAD,
	}, nil
}

// foldBlock applies the running accumulator recurrence T <- (T XOR block) * R.
func (s *State) foldBlock(b belt.Block) {
	s.t = belt.PolyMul(s.t.XOR(b), s.r, nil)
}

// fold accumulates data into T, buffering any trailing partial block in
// s.block until either it fills or the section it belongs to ends.
func (s *State) fold(data []byte) {
	if s.filled > 0 {
		n := copy(s.block[s.filled:], data)
		s.filled += n
		data = data[n:]
		if s.filled < belt.BlockSize {
			return
		}
		s.foldBlock(belt.BlockFromBytes(s.block[:]))
		s.filled = 0
	}
	for len(data) >= belt.BlockSize {
		s.foldBlock(belt.BlockFromBytes(data[:belt.BlockSize]))
		data = data[belt.BlockSize:]
	}
	if len(data) > 0 {
		s.filled = copy(s.block[:], data)
	}
}

// flushResidue zero-pads and folds any partial block left over from the
// section that just ended. Padding never carries across a section
// boundary: AD and CT residues are folded separately.
func (s *State) flushResidue() {
	if s.filled == 0 {
		return
	}
	var padded [belt.BlockSize]byte
	copy(padded[:], s.block[:s.filled])
	s.foldBlock(belt.BlockFromBytes(padded[:]))
	s.filled = 0
}

// enterCT performs the AD->CT transition the first time it is observed,
// flushing any residual AD bytes. It is a no-op once phase is already CT
// or FINAL (the FINAL case is rejected by the caller beforehand).
func (s *State) enterCT() {
	if s.phase == phaseAD {
		s.flushResidue()
		s.phase = phaseCT
	}
}

// StepI feeds associated/authenticated-only data. Valid only in the AD
// phase; once payload has been fed via StepA/StepE/StepD, StepI is
// rejected with ErrOrder.
func (s *State) StepI(ad []byte) error {
	if s.phase == phaseFinal {
		return ErrFinalized
	}
	if s.phase != phaseAD {
		return ErrOrder
	}
	s.lAD += uint64(len(ad)) * 8
	s.fold(ad)
	return nil
}

// StepA authenticates ciphertext: it folds ct into the accumulator and
// adds its bit length to L_ct. Calling StepA for the first time (whether
// before or after StepE/StepD) performs the AD->CT transition.
func (s *State) StepA(ct []byte) error {
	if s.phase == phaseFinal {
		return ErrFinalized
	}
	s.enterCT()
	s.lCT += uint64(len(ct)) * 8
	s.fold(ct)
	return nil
}

// StepE encrypts payload in place via the CTR keystream. It does not
// update the accumulator; callers authenticate the resulting ciphertext
// with a separate StepA call.
func (s *State) StepE(payload []byte) error {
	return s.xorKeyStream(payload)
}

// StepD decrypts ciphertext in place; identical to StepE since CTR
// encryption and decryption are both XOR with the keystream.
func (s *State) StepD(ciphertext []byte) error {
	return s.xorKeyStream(ciphertext)
}

func (s *State) xorKeyStream(buf []byte) error {
	if s.phase == phaseFinal {
		return ErrFinalized
	}
	s.enterCT()
	s.ctr.XORKeyStream(buf, buf)
	return nil
}

// finalize runs the shared StepG/StepV finalization: flush any CT
// residue, fold the length block, and block-encrypt T in place.
func (s *State) finalize() ([]byte, error) {
	if s.phase == phaseFinal {
		return nil, ErrFinalized
	}
	s.flushResidue()
	s.foldBlock(belt.Block{
		uint32(s.lAD), uint32(s.lAD >> 32),
		uint32(s.lCT), uint32(s.lCT >> 32),
	})

	tBytes := s.t.Bytes()
	belt.EncryptBlock(s.sk, tBytes)
	s.t = belt.BlockFromBytes(tBytes)
	s.phase = phaseFinal

	return tBytes[:TagSize], nil
}

// StepG finalizes the state and writes the TagSize-octet authentication
// tag to out.
func (s *State) StepG(out []byte) error {
	if len(out) != TagSize {
		return ErrBadInput
	}
	tag, err := s.finalize()
	if err != nil {
		return err
	}
	copy(out, tag)
	return nil
}

// StepV finalizes the state and compares the computed tag against
// expected in constant time. It returns (true, nil) on a match, (false,
// nil) on a clean mismatch, and a non-nil error only for structural
// misuse (bad tag length, already finalized).
func (s *State) StepV(expected []byte) (bool, error) {
	if len(expected) != TagSize {
		return false, ErrBadInput
	}
	tag, err := s.finalize()
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(tag, expected) == 1, nil
}

// Zero clears the state's sensitive material: the scheduled key, the
// CTR keystream state, the polynomial-hash key R, and the accumulator
// T. Callers must call it once a state is no longer needed.
func (s *State) Zero() {
	if s.sk != nil {
		s.sk.Zero()
	}
	if s.ctr != nil {
		s.ctr.Zero()
	}
	s.r = belt.Block{}
	s.t = belt.Block{}
	for i := range s.block {
		s.block[i] = 0
	}
	s.filled = 0
	s.lAD, s.lCT = 0, 0
}
