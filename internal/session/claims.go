// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode indicates a credential that could not be decoded.
var ErrDecode = errors.New("malformed credential")

// Claims are the parts of the credential the client reads.
type Claims struct {
	Subject string
	// ExpiresAt is zero when the credential carries no expiry.
	ExpiresAt time.Time
}

// HasExpiry reports whether the credential carries an expiry.
func (c Claims) HasExpiry() bool {
	return !c.ExpiresAt.IsZero()
}

// ExpiredAt reports whether the credential has expired at now. Expiry at
// exactly now counts as expired.
func (c Claims) ExpiredAt(now time.Time) bool {
	return c.HasExpiry() && !now.Before(c.ExpiresAt)
}

// Decode reads the claims of a JWT without verifying its signature. The
// backend verifies; the client only needs the subject and expiry.
func Decode(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, fmt.Errorf("%w: empty token", ErrDecode)
	}

	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &registered); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	claims := Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
