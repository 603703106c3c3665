//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command belt-wrap wraps and unwraps files with DWP, framing the
// result as iv || uint32(len(ad)) || ad || ciphertext || tag.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/dwp/dwp"
	"golang.org/x/crypto/cryptobyte"
)

func main() {
	keyFile := flag.String("key", "", "key file (16, 24, or 32 octets)")
	adFile := flag.String("ad", "", "associated data file (optional)")
	out := flag.String("o", "", "output filename")
	flag.Parse()

	log.SetFlags(0)

	if len(*keyFile) == 0 {
		log.Fatalf("no key file")
	}
	if len(*out) == 0 {
		log.Fatalf("no output filename")
	}
	if len(flag.Args()) != 2 {
		log.Fatalf("usage: belt-wrap -key=KEYFILE [-ad=ADFILE] -o=OUT wrap/unwrap INPUT")
	}

	key, err := os.ReadFile(*keyFile)
	if err != nil {
		log.Fatal(err)
	}
	var ad []byte
	if len(*adFile) > 0 {
		ad, err = os.ReadFile(*adFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	switch flag.Args()[0] {
	case "wrap":
		err = wrapFile(key, ad, flag.Args()[1], *out)
	case "unwrap":
		err = unwrapFile(key, flag.Args()[1], *out)
	default:
		log.Fatalf("invalid command: %v", flag.Args()[0])
	}
	if err != nil {
		log.Fatal(err)
	}
}

func wrapFile(key, ad []byte, inFile, outFile string) error {
	pt, err := os.ReadFile(inFile)
	if err != nil {
		return err
	}

	iv := make([]byte, dwp.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return err
	}

	ct, tag, err := dwp.Wrap(key, iv, ad, pt)
	if err != nil {
		return err
	}

	var b cryptobyte.Builder
	b.AddBytes(iv)
	b.AddUint32(uint32(len(ad)))
	b.AddBytes(ad)
	b.AddBytes(ct)
	b.AddBytes(tag)
	frame, err := b.Bytes()
	if err != nil {
		return err
	}

	return os.WriteFile(outFile, frame, 0o600)
}

func unwrapFile(key []byte, inFile, outFile string) error {
	frame, err := os.ReadFile(inFile)
	if err != nil {
		return err
	}
	iv, ad, ct, tag, err := unwrapFrame(frame)
	if err != nil {
		return err
	}
	pt, err := dwp.Unwrap(key, iv, ad, ct, tag)
	if err != nil {
		return err
	}
	return os.WriteFile(outFile, pt, 0o600)
}

// unwrapFrame parses the iv || len(ad) || ad || ciphertext || tag frame
// wrapFile produces, using cryptobyte.String the way the standard
// library's TLS stack parses length-delimited records.
func unwrapFrame(frame []byte) (iv, ad, ct, tag []byte, err error) {
	s := cryptobyte.String(frame)
	iv = make([]byte, dwp.IVSize)
	if !s.CopyBytes(iv) {
		return nil, nil, nil, nil, fmt.Errorf("belt-wrap: truncated frame")
	}
	var adLen uint32
	if !s.ReadUint32(&adLen) {
		return nil, nil, nil, nil, fmt.Errorf("belt-wrap: truncated frame")
	}
	ad = make([]byte, adLen)
	if !s.CopyBytes(ad) {
		return nil, nil, nil, nil, fmt.Errorf("belt-wrap: truncated frame")
	}
	tag = make([]byte, dwp.TagSize)
	if len(s) < dwp.TagSize {
		return nil, nil, nil, nil, fmt.Errorf("belt-wrap: truncated frame")
	}
	ct = make([]byte, len(s)-dwp.TagSize)
	if !s.CopyBytes(ct) {
		return nil, nil, nil, nil, fmt.Errorf("belt-wrap: truncated frame")
	}
	if !s.CopyBytes(tag) {
		return nil, nil, nil, nil, fmt.Errorf("belt-wrap: truncated frame")
	}
	return iv, ad, ct, tag, nil
}
