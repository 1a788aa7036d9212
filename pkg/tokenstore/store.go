// Package tokenstore persists the console credentials: the access token, the
// refresh token and the serialized user profile. Every backend clears the
// entries it is given as one unit.
package tokenstore

import (
	"context"
	"fmt"
)

// Key names one persisted entry.
type Key string

const (
	AccessToken  Key = "admin_token"
	RefreshToken Key = "admin_refresh_token"
	User         Key = "admin_user"
)

// Keys is the full credential group.
var Keys = []Key{AccessToken, RefreshToken, User}

// Store is a small key/value store scoped to one console session.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value for key; ok is false when the entry is absent.
	Get(ctx context.Context, key Key) (value string, ok bool, err error)
	Set(ctx context.Context, key Key, value string) error
	// Clear removes the given entries together.
	Clear(ctx context.Context, keys ...Key) error
}

// ClearAll removes the whole credential group from s.
func ClearAll(ctx context.Context, s Store) error {
	if err := s.Clear(ctx, Keys...); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// SetAll writes several entries in a stable order, stopping at the first error.
func SetAll(ctx context.Context, s Store, values map[Key]string) error {
	for _, k := range Keys {
		v, ok := values[k]
		if !ok {
			continue
		}
		if err := s.Set(ctx, k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}
