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

package postgres

import (
	"database/sql"

	"github.com/redis/go-redis/v9"

	redisstore "github.com/cipherpost/cipherpost/backend/storage/redis"
)

// Store is the authoritative persistence layer: key pairs and the
// message ledger live in Postgres, with a redis read-through cache in
// front of public key lookups only. Private keys are never cached.
type Store struct {
	db       *sql.DB
	keyCache *redisstore.KeyCache
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:       db,
		keyCache: redisstore.NewKeyCache(rdb),
	}
}
