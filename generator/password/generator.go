// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package password

import (
	"errors"
	"fmt"

	gopassword "github.com/sethvargo/go-password/password"
)

// ErrNilProfile is raised when FromProfile is called with a nil profile.
var ErrNilProfile = errors.New("password: profile must not be nil")

// Generate generates a password of length characters, including numDigits
// digits and numSymbol symbols.
func Generate(length, numDigits, numSymbol int, noUpper, allowRepeat bool) (string, error) {
	v, err := gopassword.Generate(length, numDigits, numSymbol, noUpper, allowRepeat)
	if err != nil {
		return "", fmt.Errorf("password: unable to generate password: %w", err)
	}
	return v, nil
}

// FromProfile generates a password according to the given profile.
func FromProfile(p *Profile) (string, error) {
	if p == nil {
		return "", ErrNilProfile
	}
	return Generate(p.Length, p.NumDigits, p.NumSymbol, p.NoUpper, p.AllowRepeat)
}

// Fast generates a password sized for pairing with the kdf.Fast preset.
func Fast() (string, error) {
	return FromProfile(ProfileFast)
}

// Balanced generates a password sized for pairing with the kdf.Balanced
// preset.
func Balanced() (string, error) {
	return FromProfile(ProfileBalanced)
}

// Secure generates a password sized for pairing with the kdf.Secure preset.
func Secure() (string, error) {
	return FromProfile(ProfileSecure)
}
