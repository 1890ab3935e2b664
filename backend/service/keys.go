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

package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cipherpost/cipherpost/backend/crypto"
	apperrors "github.com/cipherpost/cipherpost/backend/errors"
	"github.com/cipherpost/cipherpost/backend/models"
)

// GenerateKeys provisions a fresh RSA pair for userID, replacing any
// existing pair, and returns only the public half.
func (s *MessagingService) GenerateKeys(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", apperrors.ErrMissingIdentity
	}

	publicKey, privateKey, err := crypto.GenerateKeyPair()
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "key generation failed", err)
	}

	pair := models.KeyPair{
		UserID:     userID,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}
	if err := s.keys.SaveKeyPair(ctx, pair); err != nil {
		return "", err
	}

	logrus.WithField("user_id", userID).Info("Generated key pair")
	return publicKey, nil
}

// GetPublicKey exposes another user's public half for client-side use.
func (s *MessagingService) GetPublicKey(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", apperrors.ErrMissingIdentity
	}
	return s.keys.GetPublicKey(ctx, userID)
}

// EncryptFor seals plaintext against receiverID's public key without
// storing anything. Single-item context: cipher failures are fatal here.
func (s *MessagingService) EncryptFor(ctx context.Context, receiverID int64, plaintext string) (string, error) {
	publicKey, err := s.keys.GetPublicKey(ctx, receiverID)
	if err != nil {
		return "", err
	}
	return s.cipher.Seal(plaintext, publicKey)
}

// DecryptOwn opens a ciphertext with the caller's own private key.
func (s *MessagingService) DecryptOwn(ctx context.Context, userID int64, ciphertext string) (string, error) {
	privateKey, err := s.keys.GetPrivateKey(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.cipher.Open(ciphertext, privateKey)
}
