// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"

	apperrors "github.com/cipherpost/cipherpost/backend/errors"
)

// MaxPlaintextSize is the hard ceiling on a single sealed payload:
// 2048/8 bytes of modulus minus the OAEP overhead of 2*sha256.Size+2.
// Longer messages must be rejected, never truncated.
const MaxPlaintextSize = keyBits/8 - 2*sha256.Size - 2

// Cipher seals and opens message envelopes with RSA-OAEP/SHA-256 over
// PEM-encoded keys. The zero value is ready to use.
type Cipher struct{}

// Seal encrypts plaintext with the recipient's public key and returns
// a self-contained base64 ciphertext. OAEP padding makes repeated calls
// with identical input produce distinct outputs.
func (Cipher) Seal(plaintext, recipientPublicPEM string) (string, error) {
	if len(plaintext) > MaxPlaintextSize {
		return "", apperrors.ErrPlaintextTooLarge(MaxPlaintextSize)
	}
	pub, err := parsePublicKey(recipientPublicPEM)
	if err != nil {
		return "", apperrors.ErrSealFailed(err)
	}
	sealed, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, []byte(plaintext), nil)
	if err != nil {
		return "", apperrors.ErrSealFailed(err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open is the inverse of Seal. A wrong key, corrupted base64 or padding
// mismatch surfaces as a CIPHER_FAILURE error, never as an empty result.
func (Cipher) Open(ciphertext, recipientPrivatePEM string) (string, error) {
	priv, err := parsePrivateKey(recipientPrivatePEM)
	if err != nil {
		return "", apperrors.ErrOpenFailed(err)
	}
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", apperrors.ErrOpenFailed(err)
	}
	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, sealed, nil)
	if err != nil {
		return "", apperrors.ErrOpenFailed(err)
	}
	return string(plaintext), nil
}
