// Package envutil reads typed configuration from environment variables.
//
// Each accessor returns a Reader, which carries the key, whether a value was
// present and any parse error, so callers can choose between a default and
// reporting the error:
//
//	rows, err := envutil.Int[int](ctx, "SEARCHES_MAX_ROWS", envutil.Default(20)).Value()
//
// Values can be overridden per context with WithEnvOverride, which keeps
// tests from touching the process environment.
package envutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// get returns a Reader for the raw value of key, preferring a context override.
func get(ctx context.Context, key string) Reader[string] {
	if val, ok := getEnvOverride(ctx, key); ok {
		return Reader[string]{key: key, present: true, value: val}
	}

	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// String reads key as a string.
func String(ctx context.Context, key string, opts ...Option[string]) Reader[string] {
	return apply(get(ctx, key), opts)
}

// Bool reads key with strconv.ParseBool.
func Bool(ctx context.Context, key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(get(ctx, key), strconv.ParseBool), opts)
}

// Int reads key as a base-10 integer that must fit in I.
func Int[I ~int | ~int8 | ~int16 | ~int32 | ~int64](
	ctx context.Context, key string, opts ...Option[I],
) Reader[I] {
	rdr := Map(get(ctx, key), func(value string) (I, error) {
		var zero I

		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return zero, err
		}

		if int64(I(n)) != n {
			return zero, fmt.Errorf("%w: %d", strconv.ErrRange, n)
		}

		return I(n), nil
	})

	return apply(rdr, opts)
}

// SlogLevel reads key as one of debug, info, warn or error (case-insensitive).
func SlogLevel(ctx context.Context, key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	rdr := Map(get(ctx, key), func(value string) (slog.Level, error) {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "debug":
			return slog.LevelDebug, nil
		case "info":
			return slog.LevelInfo, nil
		case "warn":
			return slog.LevelWarn, nil
		case "error":
			return slog.LevelError, nil
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, value)
		}
	})

	return apply(rdr, opts)
}
