// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package volume

import (
	"sync/atomic"

	"github.com/sealedstream/cryptor/log"
)

type atomicBool int32

func (b *atomicBool) isSet() bool { return atomic.LoadInt32((*int32)(b)) != 0 }
func (b *atomicBool) setTrue()    { atomic.StoreInt32((*int32)(b), 1) }
func (b *atomicBool) setFalse()   { atomic.StoreInt32((*int32)(b), 0) }

var strictMode atomicBool

// InStrictMode returns the reserved-bytes strict validation flag status.
func InStrictMode() bool {
	return strictMode.isSet()
}

// SetStrictMode makes FromBytes reject any header whose reserved[256] area
// is not all zero. Default behavior is lenient: non-zero reserved bytes are
// preserved through round-trips, matching the reference implementation's
// decode-whatever-is-there behavior. Returns a function to revert.
func SetStrictMode() (revert func()) {
	if strictMode.isSet() {
		return func() {}
	}

	strictMode.setTrue()
	log.Level(log.DebugLevel).Message("volume: strict reserved-bytes mode enabled")

	return func() {
		strictMode.setFalse()
		log.Level(log.DebugLevel).Message("volume: strict reserved-bytes mode disabled")
	}
}
