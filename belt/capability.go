//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package belt

import "golang.org/x/sys/cpu"

// HardwareAcceleration reports whether this host exposes the vector
// extensions a constant-time, hardware-assisted BELT implementation
// could target. No such path is implemented here; this is a capability
// probe only, following the donor repository's reach for
// golang.org/x/sys for platform detection rather than hand-rolled
// CPUID parsing.
func HardwareAcceleration() bool {
	switch {
	case cpu.X86.HasAES && cpu.X86.HasSSE41:
		return true
	case cpu.ARM64.HasAES:
		return true
	default:
		return false
	}
}
