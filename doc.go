// Package cryptor provides a password-based authenticated encryption toolkit
// for files and encrypted block volumes.
//
// It defines a chunked streaming AEAD container format ("v2") for encrypting
// arbitrarily large inputs with bounded memory, and a fixed-size volume
// header format used to describe encrypted block devices. Key derivation and
// AEAD primitives are consumed as versioned, swappable contracts rather than
// hardcoded algorithms.
package cryptor
