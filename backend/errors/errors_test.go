// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeKeyNotFound, CodeOf(ErrKeyPairNotFound(7)))
	assert.Equal(t, CodePermissionDenied, CodeOf(ErrNotReceiver))
	assert.Equal(t, CodeUnknown, CodeOf(stderrors.New("plain")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))
}

func TestCodeOfWalksWrapChain(t *testing.T) {
	inner := ErrKeyPairNotFound(7)
	wrapped := fmt.Errorf("while sending: %w", inner)
	assert.Equal(t, CodeKeyNotFound, CodeOf(wrapped))
	assert.True(t, Is(wrapped, CodeKeyNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Wrap(CodeInternal, "failed to save key pair", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save key pair")
}

func TestKeyPairNotFoundNamesUser(t *testing.T) {
	err := ErrKeyPairNotFound(42)
	assert.Contains(t, err.Error(), "42")
}
