// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Public keys change only on explicit regeneration, so a generous TTL
	// is safe; regeneration invalidates the entry before the write lands.
	publicKeyTTL = time.Hour

	publicKeyPrefix = "keys:public:" // keys:public:{userId} - PEM public key
)

// KeyCache is a read-through cache for public keys. Only the public half
// is ever cached; private keys always come from the authoritative store.
// Cache failures degrade to misses, they never fail a lookup.
type KeyCache struct {
	rdb *redis.Client
}

func NewKeyCache(rdb *redis.Client) *KeyCache {
	return &KeyCache{rdb: rdb}
}

func (c *KeyCache) Get(ctx context.Context, userID int64) (string, bool) {
	key := publicKeyPrefix + fmt.Sprintf("%d", userID)

	publicKey, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Public key cache read failed")
		return "", false
	}
	return publicKey, true
}

func (c *KeyCache) Set(ctx context.Context, userID int64, publicKey string) {
	key := publicKeyPrefix + fmt.Sprintf("%d", userID)
	if err := c.rdb.Set(ctx, key, publicKey, publicKeyTTL).Err(); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Public key cache write failed")
	}
}

func (c *KeyCache) Invalidate(ctx context.Context, userID int64) {
	key := publicKeyPrefix + fmt.Sprintf("%d", userID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Public key cache invalidation failed")
	}
}
