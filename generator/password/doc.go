// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package password generates high-entropy random password strings for
// callers of this toolkit who don't want to supply their own password
// before calling kdf.DeriveKey, stream.Encode, or volume.Format.
package password
