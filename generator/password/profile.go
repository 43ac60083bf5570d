// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package password

// Profile holds password generation settings for a password suitable as
// input to kdf.DeriveKey.
type Profile struct {
	// Password total length.
	Length int
	// Digit count in generated password.
	NumDigits int
	// Symbol count in generated password.
	NumSymbol int
	// Allow/Disallow uppercase.
	NoUpper bool
	// Allow/Disallow character repetition.
	AllowRepeat bool
}

var (
	// ProfileFast pairs with the kdf.Fast preset: a 16 character password is
	// enough entropy for a short-lived or low-value key.
	ProfileFast = &Profile{Length: 16, NumDigits: 4, NumSymbol: 4, NoUpper: false, AllowRepeat: true}

	// ProfileBalanced pairs with the kdf.Balanced preset, the default for
	// most stream.Encode/volume.Format callers.
	ProfileBalanced = &Profile{Length: 32, NumDigits: 10, NumSymbol: 10, NoUpper: false, AllowRepeat: true}

	// ProfileSecure pairs with the kdf.Secure preset for long-lived or
	// high-value keys.
	ProfileSecure = &Profile{Length: 64, NumDigits: 10, NumSymbol: 10, NoUpper: false, AllowRepeat: true}
)
