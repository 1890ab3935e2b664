// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/cipherpost/cipherpost/backend/errors"
	"github.com/cipherpost/cipherpost/backend/models"
)

func (s *Store) SaveKeyPair(ctx context.Context, pair models.KeyPair) error {
	// Invalidate before writing so a concurrent reader re-fetches from
	// the authoritative row instead of serving the replaced public key.
	s.keyCache.Invalidate(ctx, pair.UserID)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO key_pairs (user_id, public_key, private_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET public_key = $2, private_key = $3, updated_at = $4`,
		pair.UserID, pair.PublicKey, pair.PrivateKey, time.Now())
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "failed to save key pair", err)
	}

	s.keyCache.Set(ctx, pair.UserID, pair.PublicKey)

	logrus.WithField("user_id", pair.UserID).Info("Key pair stored")
	return nil
}

func (s *Store) GetPublicKey(ctx context.Context, userID int64) (string, error) {
	if cached, ok := s.keyCache.Get(ctx, userID); ok {
		return cached, nil
	}

	var publicKey string
	err := s.db.QueryRowContext(ctx, `
		SELECT public_key FROM key_pairs WHERE user_id = $1`, userID).Scan(&publicKey)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrKeyPairNotFound(userID)
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "failed to load public key", err)
	}

	s.keyCache.Set(ctx, userID, publicKey)
	return publicKey, nil
}

func (s *Store) GetPrivateKey(ctx context.Context, userID int64) (string, error) {
	var privateKey string
	err := s.db.QueryRowContext(ctx, `
		SELECT private_key FROM key_pairs WHERE user_id = $1`, userID).Scan(&privateKey)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrKeyPairNotFound(userID)
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "failed to load private key", err)
	}
	return privateKey, nil
}
