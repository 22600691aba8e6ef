package kvstore

import (
	"context"
	"encoding/json"
	"errors"

	"care_portal_backend/platform/logger"
)

// GetJSON unmarshals the document stored under key into a value of type T.
// On absence, corrupt JSON, or a driver failure it returns the fallback and
// logs a warning. It never returns an error: the store favors availability,
// and callers always get a usable value.
func GetJSON[T any](ctx context.Context, s Store, log *logger.Logger, key string, fallback T) T {
	data, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && log != nil {
			log.StorageWarning("get", key, err)
		}
		return fallback
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		if log != nil {
			log.StorageWarning("decode", key, err)
		}
		return fallback
	}
	return v
}

// SetJSON marshals v and stores it under key. On failure it logs a warning
// and leaves the prior state untouched.
func SetJSON[T any](ctx context.Context, s Store, log *logger.Logger, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		if log != nil {
			log.StorageWarning("encode", key, err)
		}
		return
	}
	if err := s.Set(ctx, key, data); err != nil {
		if log != nil {
			log.StorageWarning("set", key, err)
		}
	}
}
