//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package belt

import "errors"

// ErrBadInput is returned when a caller-supplied buffer has an invalid
// size (key, IV, or block length).
var ErrBadInput = errors.New("belt: bad input")
