package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// LoadJSON decodes the value stored under key into a T.
//
// Decoding fails closed: an absent key, malformed JSON, unknown fields or a
// value rejected by validate all yield def. Only storage I/O errors are
// returned. validate may be nil.
func LoadJSON[T any](ctx context.Context, s Storage, log *zap.Logger, key string, def T, validate func(T) error) (T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}

	v, err := decodeStrict[T](raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		log.Warn("Discarding unreadable stored value", zap.String("key", key), zap.Error(err))
		return def, nil
	}
	return v, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Storage, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(b))
}

func decodeStrict[T any](raw string) (T, error) {
	var v T
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, errors.New("trailing data after JSON value")
	}
	if bytes.Equal(bytes.TrimSpace([]byte(raw)), []byte("null")) {
		return v, errors.New("null value")
	}
	return v, nil
}
