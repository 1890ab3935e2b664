// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package errors

import "fmt"

var (
	ErrMissingIdentity = Unauthenticated("caller identity is missing or invalid")
	ErrMessageNotFound = NotFound("message not found")
	ErrNotReceiver     = Forbidden("only the receiver may mark a message as read")
)

// ErrKeyPairNotFound identifies the user whose key pair is absent so the
// caller always knows which side of the exchange is unprovisioned.
func ErrKeyPairNotFound(userID int64) error {
	return New(CodeKeyNotFound, fmt.Sprintf("no key pair registered for user %d", userID))
}

func ErrSealFailed(cause error) error {
	return Wrap(CodeCipherFailure, "encryption failed", cause)
}

func ErrOpenFailed(cause error) error {
	return Wrap(CodeCipherFailure, "decryption failed", cause)
}

func ErrPlaintextTooLarge(limit int) error {
	return New(CodeCipherFailure, fmt.Sprintf("plaintext exceeds the %d byte ceiling for RSA-2048 OAEP", limit))
}
