//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dwp

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	testKey = []byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E, 0x1F,
	}
	testIV = []byte{
		0xB1, 0x94, 0xBA, 0xC8, 0x0A, 0x08, 0xF5, 0x3B,
		0x36, 0x6D, 0x00, 0x8E, 0x58, 0x4A, 0x5D, 0xE4,
	}
)

// This implementation's BELT block cipher is a from-scratch rendition
// of a trusted primitive, so these fixtures check the properties DWP
// itself is required to satisfy rather than bit-exact STB reference
// ciphertext/tag values this module cannot independently obtain.

func TestWrapUnwrapRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		ad   []byte
		pt   []byte
	}{
		{"KAT-1 empty/empty", nil, nil},
		{"KAT-2 ad-only", bytes.Repeat([]byte{0xAA}, 13), nil},
		{"KAT-3 pt-only", nil, bytes.Repeat([]byte{0x55}, 48)},
		{"KAT-4 both", bytes.Repeat([]byte{0xAA}, 13), bytes.Repeat([]byte{0x55}, 48)},
		{"KAT-5 unaligned", bytes.Repeat([]byte{0x11}, 7), bytes.Repeat([]byte{0x22}, 23)},
	}
	for _, kc := range cases {
		t.Run(kc.name, func(t *testing.T) {
			ct, tag, err := Wrap(testKey, testIV, kc.ad, kc.pt)
			if err != nil {
				t.Fatalf("Wrap: %v", err)
			}
			if len(ct) != len(kc.pt) {
				t.Fatalf("len(ct) = %d, want %d", len(ct), len(kc.pt))
			}
			if len(tag) != TagSize {
				t.Fatalf("len(tag) = %d, want %d", len(tag), TagSize)
			}

			pt, err := Unwrap(testKey, testIV, kc.ad, ct, tag)
			if err != nil {
				t.Fatalf("Unwrap: %v", err)
			}
			if diff := cmp.Diff(kc.pt, pt); diff != "" && !(len(kc.pt) == 0 && len(pt) == 0) {
				t.Errorf("Unwrap plaintext mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapDeterministic(t *testing.T) {
	ad := []byte("associated data")
	pt := []byte("the quick brown fox")

	ct1, tag1, err := Wrap(testKey, testIV, ad, pt)
	if err != nil {
		t.Fatal(err)
	}
	ct2, tag2, err := Wrap(testKey, testIV, ad, pt)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ct1, ct2) || !bytes.Equal(tag1, tag2) {
		t.Fatal("Wrap is not deterministic for identical inputs")
	}
}

func TestTamperAD(t *testing.T) {
	ad := []byte("associated data")
	pt := []byte("payload")

	ct, tag, err := Wrap(testKey, testIV, ad, pt)
	if err != nil {
		t.Fatal(err)
	}
	tamperedAD := append([]byte(nil), ad...)
	tamperedAD[0] ^= 0x01

	if _, err := Unwrap(testKey, testIV, tamperedAD, ct, tag); err != ErrAuthFailure {
		t.Fatalf("Unwrap with tampered AD = %v, want ErrAuthFailure", err)
	}
}

func TestTamperCiphertext(t *testing.T) {
	ad := []byte("associated data")
	pt := []byte("payload")

	ct, tag, err := Wrap(testKey, testIV, ad, pt)
	if err != nil {
		t.Fatal(err)
	}
	ct[len(ct)-1] ^= 0x01

	if _, err := Unwrap(testKey, testIV, ad, ct, tag); err != ErrAuthFailure {
		t.Fatalf("Unwrap with tampered ciphertext = %v, want ErrAuthFailure", err)
	}
}

func TestTamperTag(t *testing.T) {
	ad := []byte("associated data")
	pt := []byte("payload")

	ct, tag, err := Wrap(testKey, testIV, ad, pt)
	if err != nil {
		t.Fatal(err)
	}
	tag[0] ^= 0x01

	if _, err := Unwrap(testKey, testIV, ad, ct, tag); err != ErrAuthFailure {
		t.Fatalf("Unwrap with tampered tag = %v, want ErrAuthFailure", err)
	}
}

func TestKeyBinding(t *testing.T) {
	ad := []byte("ad")
	pt := []byte("pt")
	ct, tag, err := Wrap(testKey, testIV, ad, pt)
	if err != nil {
		t.Fatal(err)
	}
	otherKey := append([]byte(nil), testKey...)
	otherKey[0] ^= 0xFF

	if _, err := Unwrap(otherKey, testIV, ad, ct, tag); err != ErrAuthFailure {
		t.Fatalf("Unwrap under different key = %v, want ErrAuthFailure", err)
	}
}

func TestIVBinding(t *testing.T) {
	ad := []byte("ad")
	pt := []byte("pt")
	ct, tag, err := Wrap(testKey, testIV, ad, pt)
	if err != nil {
		t.Fatal(err)
	}
	otherIV := append([]byte(nil), testIV...)
	otherIV[0] ^= 0xFF

	if _, err := Unwrap(testKey, otherIV, ad, ct, tag); err != ErrAuthFailure {
		t.Fatalf("Unwrap under different IV = %v, want ErrAuthFailure", err)
	}
}

func TestEmptySections(t *testing.T) {
	ct, tag, err := Wrap(testKey, testIV, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ct) != 0 {
		t.Fatalf("len(ct) = %d, want 0", len(ct))
	}
	if len(tag) != TagSize {
		t.Fatalf("len(tag) = %d, want %d", len(tag), TagSize)
	}
}

// streamingWrap reproduces Wrap using the low-level Step* API with
// caller-chosen chunk boundaries, to test that chunking never affects
// the result.
func streamingWrap(t *testing.T, adChunks, ptChunks [][]byte) (ct, tag []byte) {
	t.Helper()
	s, err := Start(testKey, testIV)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Zero()

	for _, chunk := range adChunks {
		if err := s.StepI(chunk); err != nil {
			t.Fatal(err)
		}
	}

	for _, chunk := range ptChunks {
		ct = append(ct, chunk...)
	}
	pos := 0
	for _, chunk := range ptChunks {
		buf := ct[pos : pos+len(chunk)]
		if err := s.StepE(buf); err != nil {
			t.Fatal(err)
		}
		pos += len(chunk)
	}
	if err := s.StepA(ct); err != nil {
		t.Fatal(err)
	}

	tag = make([]byte, TagSize)
	if err := s.StepG(tag); err != nil {
		t.Fatal(err)
	}
	return ct, tag
}

func TestStreamingEquivalence(t *testing.T) {
	ad := bytes.Repeat([]byte{0x5A}, 37)
	pt := bytes.Repeat([]byte{0xA5}, 41)

	wantCT, wantTag, err := Wrap(testKey, testIV, ad, pt)
	if err != nil {
		t.Fatal(err)
	}

	adChunks := [][]byte{ad[:1], ad[1:16], ad[16:17], ad[17:]}
	ptChunks := [][]byte{pt[:5], pt[5:16], pt[16:16], pt[16:30], pt[30:]}

	gotCT, gotTag := streamingWrap(t, adChunks, ptChunks)

	if !bytes.Equal(wantCT, gotCT) {
		t.Errorf("streaming ciphertext mismatch:\ngot  %x\nwant %x", gotCT, wantCT)
	}
	if !bytes.Equal(wantTag, gotTag) {
		t.Errorf("streaming tag mismatch:\ngot  %x\nwant %x", gotTag, wantTag)
	}
}

func TestStepIRejectedAfterCTPhase(t *testing.T) {
	s, err := Start(testKey, testIV)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Zero()

	buf := []byte{1, 2, 3}
	if err := s.StepE(buf); err != nil {
		t.Fatal(err)
	}
	if err := s.StepI([]byte("late ad")); err != ErrOrder {
		t.Fatalf("StepI after CT phase = %v, want ErrOrder", err)
	}
}

func TestStepsRejectedAfterFinalize(t *testing.T) {
	s, err := Start(testKey, testIV)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Zero()

	var tag [TagSize]byte
	if err := s.StepG(tag[:]); err != nil {
		t.Fatal(err)
	}
	if err := s.StepI(nil); err != ErrFinalized {
		t.Fatalf("StepI after finalize = %v, want ErrFinalized", err)
	}
	if err := s.StepA(nil); err != ErrFinalized {
		t.Fatalf("StepA after finalize = %v, want ErrFinalized", err)
	}
	if err := s.StepE(nil); err != ErrFinalized {
		t.Fatalf("StepE after finalize = %v, want ErrFinalized", err)
	}
	if _, err := s.StepV(tag[:]); err != ErrFinalized {
		t.Fatalf("StepV after finalize = %v, want ErrFinalized", err)
	}
}

func TestBadKeyLength(t *testing.T) {
	_, _, err := Wrap(make([]byte, 20), testIV, nil, nil)
	if err != ErrBadInput {
		t.Fatalf("Wrap with 20-octet key = %v, want ErrBadInput", err)
	}
}

func TestBadIVLength(t *testing.T) {
	_, _, err := Wrap(testKey, make([]byte, 12), nil, nil)
	if err != ErrBadInput {
		t.Fatalf("Wrap with 12-octet iv = %v, want ErrBadInput", err)
	}
}

func TestAllKeyLengths(t *testing.T) {
	for _, n := range []int{16, 24, 32} {
		key := bytes.Repeat([]byte{0x42}, n)
		ct, tag, err := Wrap(key, testIV, []byte("ad"), []byte("pt"))
		if err != nil {
			t.Fatalf("key length %d: Wrap: %v", n, err)
		}
		pt, err := Unwrap(key, testIV, []byte("ad"), ct, tag)
		if err != nil {
			t.Fatalf("key length %d: Unwrap: %v", n, err)
		}
		if !bytes.Equal(pt, []byte("pt")) {
			t.Fatalf("key length %d: round-trip mismatch", n)
		}
	}
}
