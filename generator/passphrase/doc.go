// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package passphrase generates DiceWare passphrases for callers who need to
// hand kdf.DeriveKey a human-memorable password instead of supplying their
// own before calling stream.Encode or volume.Format.
package passphrase
