/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package expr

import (
	"fmt"

	"devt.de/krotik/common/bitutil"
)

/*
fingerprintSeed is the seed for fingerprint hashes.
*/
const fingerprintSeed = 42

/*
Fingerprint calculates a hash of the encoded form of a node. Structurally
equal trees of the same kinds have the same fingerprint in every process.
*/
func Fingerprint(node interface{}) (uint32, error) {
	data, err := Encode(node)
	if err != nil {
		return 0, err
	}

	return FingerprintData(data)
}

/*
FingerprintData calculates the fingerprint of an already encoded node.
*/
func FingerprintData(data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: no data", ErrMalformedPayload)
	}

	// The hash function requires data beyond the last full block of the
	// hashed range so one padding byte is added. It is never hashed.

	padded := make([]byte, len(data)+1)
	copy(padded, data)

	return bitutil.MurMurHashData(padded, 0, len(data), fingerprintSeed)
}
