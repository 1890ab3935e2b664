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

func (s *Store) Migrate() error {
	migrations := []string{
		// One key pair per user; regeneration replaces both columns in a
		// single upsert so a reader never observes a mismatched pair.
		`CREATE TABLE IF NOT EXISTS key_pairs (
			user_id BIGINT PRIMARY KEY,
			public_key TEXT NOT NULL,
			private_key TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Message ledger. seq breaks created_at ties in list ordering.
		`CREATE TABLE IF NOT EXISTS messages (
			message_id VARCHAR(36) PRIMARY KEY,
			seq BIGSERIAL,
			sender_id BIGINT NOT NULL,
			receiver_id BIGINT NOT NULL,
			ciphertext TEXT NOT NULL,
			attachment_url TEXT,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Index for inbox drains
		`CREATE INDEX IF NOT EXISTS idx_unread_messages
		ON messages(receiver_id, created_at, seq)
		WHERE is_read = FALSE`,

		// Index for conversation history in either direction
		`CREATE INDEX IF NOT EXISTS idx_conversation_sender
		ON messages(sender_id, receiver_id, created_at, seq)`,

		`CREATE INDEX IF NOT EXISTS idx_conversation_receiver
		ON messages(receiver_id, sender_id, created_at, seq)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
