// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package passphrase

import (
	"fmt"
	"strings"

	"github.com/sethvargo/go-diceware/diceware"
)

const (
	// MinWordCount defines the lowest bound for allowed word count.
	MinWordCount = 4
	// MaxWordCount defines the highest bound for allowed word count.
	MaxWordCount = 24
	// FastWordCount matches the word count used to pair a passphrase with
	// the kdf.Fast preset: a short-lived or low-value key.
	FastWordCount = 4
	// BalancedWordCount matches kdf.Balanced: the default preset for most
	// stream.Encode/volume.Format callers.
	BalancedWordCount = 8
	// SecureWordCount matches kdf.Secure: long-lived or high-value keys.
	SecureWordCount = 12
	// MasterWordCount generates a passphrase strong enough to protect a
	// master key that itself wraps other keys.
	MasterWordCount = 24
)

// Diceware generates a passphrase of count english words, clamped to
// [MinWordCount, MaxWordCount].
func Diceware(count int) (string, error) {
	if count < MinWordCount {
		count = MinWordCount
	}
	if count > MaxWordCount {
		count = MaxWordCount
	}

	list, err := diceware.Generate(count)
	if err != nil {
		return "", fmt.Errorf("passphrase: unable to generate diceware passphrase: %w", err)
	}

	return strings.Join(list, "-"), nil
}

// Fast generates a passphrase sized for pairing with the kdf.Fast preset.
func Fast() (string, error) {
	return Diceware(FastWordCount)
}

// Balanced generates a passphrase sized for pairing with the kdf.Balanced
// preset.
func Balanced() (string, error) {
	return Diceware(BalancedWordCount)
}

// Secure generates a passphrase sized for pairing with the kdf.Secure
// preset.
func Secure() (string, error) {
	return Diceware(SecureWordCount)
}

// Master generates a 24-word passphrase for protecting a master key that
// itself wraps other keys.
func Master() (string, error) {
	return Diceware(MasterWordCount)
}
